package handlers

import (
	"swiftkart/internal/cart"
	"swiftkart/internal/catalog"
	"swiftkart/internal/delivery"
)

type Deps struct {
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	DeliveryHandler *DeliveryHandler
}

func NewDeps(pages *catalog.Paginator, cartStore *cart.Store, resolver *delivery.Resolver, ticker *delivery.Ticker) *Deps {
	return &Deps{
		ProductHandler:  &ProductHandler{Pages: pages},
		CartHandler:     &CartHandler{Cart: cartStore, Pages: pages},
		DeliveryHandler: &DeliveryHandler{Resolver: resolver, Ticker: ticker, Pages: pages},
	}
}
