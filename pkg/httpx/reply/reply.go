package reply

import (
	"context"
	"errors"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"vend_kiosk/pkg/contextx"
	"vend_kiosk/pkg/errcodes"
	"vend_kiosk/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

func (e *errorResponse) WithDefaultCode(code failure.ErrorCode) {
	if e.Code == "" {
		e.Code = code.String()
	}
}

// codedError is implemented by domain errors carrying their own code.
type codedError interface {
	error
	ErrorCode() failure.ErrorCode
	Description() string
}

//nolint:gochecknoglobals
var statusByCode = map[failure.ErrorCode]int{
	errcodes.ValidationError:    http.StatusBadRequest,
	errcodes.NotFound:           http.StatusNotFound,
	errcodes.ItemNotFound:       http.StatusNotFound,
	errcodes.PurchaseInProgress: http.StatusConflict,
	errcodes.NoSelection:        http.StatusUnprocessableEntity,
	errcodes.OutOfStock:         http.StatusUnprocessableEntity,
	errcodes.InsufficientFunds:  http.StatusUnprocessableEntity,
	errcodes.InvalidAmount:      http.StatusUnprocessableEntity,
	errcodes.CatalogLoadError:   http.StatusBadGateway,
	errcodes.PersistenceError:   http.StatusBadGateway,
	errcodes.TimeoutExceeded:    http.StatusGatewayTimeout,
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, err error) {
	logger(ctx).Error("error", logx.Error(err))

	var coded codedError
	if errors.As(err, &coded) {
		status, ok := statusByCode[coded.ErrorCode()]
		if !ok {
			status = http.StatusInternalServerError
		}

		JSON(ctx, w, status, errorResponse{
			Code:      coded.ErrorCode().String(),
			Message:   coded.Description(),
			SupportID: supportID(ctx),
		})

		return
	}

	response := errorResponse{
		Code:      failure.Code(err).String(),
		Message:   failure.Description(err),
		SupportID: supportID(ctx),
	}

	switch {
	case failure.IsInvalidArgumentError(err):
		response.WithDefaultCode(errcodes.ValidationError)
		JSON(ctx, w, http.StatusBadRequest, response)
	case failure.IsNotFoundError(err):
		response.WithDefaultCode(errcodes.NotFound)
		JSON(ctx, w, http.StatusNotFound, response)
	case failure.IsConflictError(err):
		JSON(ctx, w, http.StatusConflict, response)
	case failure.IsUnprocessableEntityError(err):
		JSON(ctx, w, http.StatusUnprocessableEntity, response)
	default:
		response.WithDefaultCode(errcodes.InternalServerError)
		JSON(ctx, w, http.StatusInternalServerError, response)
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
