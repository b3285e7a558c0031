package commercetools

import (
	"strings"

	"asset-sync/core/reconcile"
)

type searchResponse struct {
	Count   int `json:"count"`
	Total   int `json:"total"`
	Results []struct {
		ID string `json:"id"`
	} `json:"results"`
}

type productData struct {
	MasterVariant reconcile.Variant   `json:"masterVariant"`
	Variants      []reconcile.Variant `json:"variants"`
}

type product struct {
	ID          string `json:"id"`
	Version     int64  `json:"version"`
	ProductType struct {
		ID string `json:"id"`
	} `json:"productType"`
	MasterData struct {
		Published        bool        `json:"published"`
		HasStagedChanges bool        `json:"hasStagedChanges"`
		Current          productData `json:"current"`
		Staged           productData `json:"staged"`
	} `json:"masterData"`
}

// view keeps the staged projection: staged changes not yet published must be visible so
// that assets are not added twice.
func (p *product) view() *reconcile.ProductView {
	return &reconcile.ProductView{
		ID:               p.ID,
		Version:          p.Version,
		ProductType:      reconcile.ProductTypeRef{ID: p.ProductType.ID},
		MasterVariant:    p.MasterData.Staged.MasterVariant,
		Variants:         p.MasterData.Staged.Variants,
		Published:        p.MasterData.Published,
		HasStagedChanges: p.MasterData.HasStagedChanges,
	}
}

type productType struct {
	ID         string `json:"id"`
	Attributes []struct {
		Name string `json:"name"`
	} `json:"attributes"`
}

type updateRequest struct {
	Version int64              `json:"version"`
	Actions []reconcile.Action `json:"actions"`
}

func trimSlash(s string) string {
	return strings.TrimRight(s, "/")
}
