package status

import (
	"doorhop/internal/app/shared/delivery"
	"doorhop/internal/domain/world"
)

type Request struct {
	UserID world.UserID
}

type Response struct {
	User          world.User            `json:"user"`
	Door          *world.Door           `json:"door,omitempty"`
	Decor         []world.Decor         `json:"decor"`
	Packages      []delivery.Delivered  `json:"packages"`
	Inventory     []world.InventoryItem `json:"inventory"`
	LikesReceived int                   `json:"likes_received"`
	Economy       world.EconomyMode     `json:"economy"`
}
