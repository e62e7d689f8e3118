package http

import (
	"fmt"

	"github.com/jotshin/vehicles-api/module/core/domain"
)

const basePath = "/cars"

type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// Resource wraps a vehicle with its navigational links. Every resource
// carries exactly one self link, the canonical retrieval URL of the
// vehicle it wraps.
type Resource struct {
	domain.Vehicle
	Links []Link `json:"links"`
}

type Collection struct {
	Items []Resource `json:"items"`
	Links []Link     `json:"links"`
}

func toResource(v domain.Vehicle) Resource {
	return Resource{
		Vehicle: v,
		Links: []Link{
			{Rel: "self", Href: fmt.Sprintf("%s/%d", basePath, v.ID)},
		},
	}
}

func toCollection(vehicles []domain.Vehicle) Collection {
	items := make([]Resource, 0, len(vehicles))
	for _, v := range vehicles {
		items = append(items, toResource(v))
	}
	return Collection{
		Items: items,
		Links: []Link{
			{Rel: "self", Href: basePath},
		},
	}
}

// self returns the href of the resource's self link.
func (r Resource) self() string {
	for _, l := range r.Links {
		if l.Rel == "self" {
			return l.Href
		}
	}
	return ""
}
