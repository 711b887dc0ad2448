package handler

import "github.com/dosapp/discovery-api/internal/core/ports"

type addProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	OfferPrice  float64  `json:"offerPrice"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

type updateProductRequest struct {
	Name        *string   `json:"name"`
	Price       *float64  `json:"price"`
	OfferPrice  *float64  `json:"offerPrice"`
	IsOnOffer   *bool     `json:"isOnOffer"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	InStock     *bool     `json:"inStock"`
	Tags        *[]string `json:"tags"`
}

type toggleOfferRequest struct {
	IsOnOffer *bool `json:"isOnOffer" validate:"required"`
}

func toAddProductInput(req addProductRequest) ports.AddProductInput {
	return ports.AddProductInput{
		Name:        req.Name,
		Price:       req.Price,
		OfferPrice:  req.OfferPrice,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
	}
}

func toUpdateProductInput(req updateProductRequest) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		OfferPrice:  req.OfferPrice,
		IsOnOffer:   req.IsOnOffer,
		Description: req.Description,
		Category:    req.Category,
		InStock:     req.InStock,
		Tags:        req.Tags,
	}
}
