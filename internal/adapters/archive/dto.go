package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"nasa-poster/internal/domain"
)

// feedDocument is the collection+json listing served at recent.json.
type feedDocument struct {
	Collection struct {
		Items []feedItem `json:"items"`
	} `json:"collection"`
}

type feedItem struct {
	Href string     `json:"href"`
	Data []feedData `json:"data"`
}

type feedData struct {
	NasaID      string `json:"nasa_id"`
	MediaType   string `json:"media_type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// toAsset maps an item to an asset. Items without data keep empty metadata.
func (i feedItem) toAsset() domain.Asset {
	asset := domain.Asset{CollectionURL: i.Href}
	if len(i.Data) == 0 {
		return asset
	}
	d := i.Data[0]
	asset.ID = d.NasaID
	asset.MediaKind = domain.MediaKind(d.MediaType)
	asset.Title = d.Title
	asset.Description = d.Description
	return asset
}

// wrappedCollection is the {"collection":{"items":[...]}} variant shape.
// Items are either plain URLs or objects carrying href.
type wrappedCollection struct {
	Collection struct {
		Items []json.RawMessage `json:"items"`
	} `json:"collection"`
}

var errUnknownCollectionShape = errors.New("variant collection is neither an array nor a collection object")

// decodeVariants accepts the plain JSON array served by collection.json as
// well as the wrapped collection shape.
func decodeVariants(raw []byte) (domain.VariantCollection, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errUnknownCollectionShape
	}

	switch raw[0] {
	case '[':
		var urls []string
		if err := json.Unmarshal(raw, &urls); err != nil {
			return nil, err
		}
		return domain.VariantCollection(urls), nil

	case '{':
		var doc wrappedCollection
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		urls := make(domain.VariantCollection, 0, len(doc.Collection.Items))
		for n, item := range doc.Collection.Items {
			u, err := decodeItemHref(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", n, err)
			}
			urls = append(urls, u)
		}
		return urls, nil

	default:
		return nil, errUnknownCollectionShape
	}
}

func decodeItemHref(item json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		return s, nil
	}
	var obj struct {
		Href string `json:"href"`
	}
	if err := json.Unmarshal(item, &obj); err != nil {
		return "", err
	}
	if obj.Href == "" {
		return "", errors.New("missing href")
	}
	return obj.Href, nil
}
