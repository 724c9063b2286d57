package inventory

import (
	"fmt"

	"vend_kiosk/internal/domain/entity"
)

type itemDTO struct {
	ID    int64  `json:"id"    validate:"gte=0"`
	Image string `json:"image"`
	Name  string `json:"name"`
	Price int64  `json:"price" validate:"gte=0"`
	Stock int    `json:"stock" validate:"gte=0"`
}

func newItemDTO(item entity.Item) itemDTO {
	return itemDTO{
		ID:    item.ID,
		Image: item.Image,
		Name:  item.Name,
		Price: item.Price,
		Stock: item.Stock,
	}
}

func (d itemDTO) toEntity() (entity.Item, error) {
	if err := validate.Struct(d); err != nil {
		return entity.Item{}, fmt.Errorf("item %d: %w", d.ID, err)
	}

	return entity.Item{
		ID:    d.ID,
		Image: d.Image,
		Name:  d.Name,
		Price: d.Price,
		Stock: d.Stock,
	}, nil
}
