package handler

import "github.com/dosapp/discovery-api/internal/core/ports"

func toCreateShopInput(req createShopRequest) ports.CreateShopInput {
	return ports.CreateShopInput{
		Name:      req.Name,
		Category:  req.Category,
		Area:      req.Area,
		City:      req.City,
		Phone:     req.Phone,
		Address:   req.Address,
		Notice:    req.Notice,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
		Lng:       req.Lng,
		Lat:       req.Lat,
	}
}

func toUpdateShopInput(req updateShopRequest) ports.UpdateShopInput {
	return ports.UpdateShopInput{
		Name:     req.Name,
		Category: req.Category,
		Area:     req.Area,
		City:     req.City,
		Phone:    req.Phone,
		Address:  req.Address,
		Notice:   req.Notice,
		Offer:    req.Offer,
		Lng:      req.Lng,
		Lat:      req.Lat,
	}
}
