package page

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"time"

	"github.com/Eursukkul/menulink/internal/models"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// descriptionRenderer does not pass raw HTML through.
var descriptionRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// AssetResolver expands stored image references to public URLs.
type AssetResolver interface {
	Resolve(ref string) string
}

// Source is the raw row set a public page is built from.
type Source struct {
	Restaurant   models.Restaurant
	Contact      *models.ContactInfo
	OpeningHours []models.OpeningHours
	Categories   []models.MenuCategory
	Social       []models.SocialLink
	Delivery     []models.DeliveryLink
}

type Theme struct {
	Variant        Variant `json:"variant"`
	PrimaryColor   string  `json:"primary_color"`
	SecondaryColor string  `json:"secondary_color"`
	FontFamily     string  `json:"font_family"`
}

type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	MapURL  string `json:"map_url"`
}

type Hours struct {
	Day    string `json:"day"`
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

type Item struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"image_url"`
	Allergens   []string `json:"allergens"`
	Available   bool     `json:"available"`
}

type Category struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Items       []Item `json:"items"`
}

type Link struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// ViewModel is the layout independent shape every template renders.
type ViewModel struct {
	RestaurantID        uint                   `json:"restaurant_id"`
	Slug                string                 `json:"slug"`
	Name                string                 `json:"name"`
	Language            string                 `json:"language"`
	Description         template.HTML          `json:"description"`
	LogoURL             string                 `json:"logo_url"`
	CoverURL            string                 `json:"cover_url"`
	Theme               Theme                  `json:"theme"`
	Contact             *Contact               `json:"contact,omitempty"`
	OpeningHours        []Hours                `json:"opening_hours"`
	Menu                []Category             `json:"menu"`
	Social              []Link                 `json:"social"`
	Delivery            []Link                 `json:"delivery"`
	ReservationMode     models.ReservationMode `json:"reservation_mode"`
	ShowReservationForm bool                   `json:"show_reservation_form"`
	ExternalBookingURL  string                 `json:"external_booking_url"`
}

// ShowReservationForm is false for disabled restaurants, including rows that
// still carry the legacy "none" mode.
func ShowReservationForm(mode models.ReservationMode) bool {
	return mode != models.ReservationDisabled && mode != "none"
}

func BuildViewModel(src Source, assets AssetResolver) (*ViewModel, error) {
	r := src.Restaurant

	var desc bytes.Buffer
	if err := descriptionRenderer.Convert([]byte(r.Description), &desc); err != nil {
		return nil, fmt.Errorf("render description: %w", err)
	}

	vm := &ViewModel{
		RestaurantID: r.ID,
		Slug:         r.Slug,
		Name:         r.Name,
		Language:     r.Language,
		Description:  template.HTML(desc.String()),
		LogoURL:      assets.Resolve(r.LogoURL),
		CoverURL:     assets.Resolve(r.CoverImageURL),
		Theme: Theme{
			Variant:        SelectTemplate(r.ThemeType),
			PrimaryColor:   r.ThemeColor,
			SecondaryColor: r.SecondaryColor,
			FontFamily:     r.FontFamily,
		},
		OpeningHours:        buildHours(src.OpeningHours),
		Menu:                buildMenu(src.Categories, assets),
		Social:              socialLinks(src.Social),
		Delivery:            deliveryLinks(src.Delivery),
		ReservationMode:     r.ReservationMode,
		ShowReservationForm: ShowReservationForm(r.ReservationMode),
		ExternalBookingURL:  r.ExternalBookingURL,
	}
	if c := src.Contact; c != nil {
		vm.Contact = &Contact{Phone: c.Phone, Email: c.Email, Address: c.Address, City: c.City, MapURL: c.MapURL}
	}
	return vm, nil
}

func buildHours(rows []models.OpeningHours) []Hours {
	sorted := append([]models.OpeningHours(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DayOfWeek < sorted[j].DayOfWeek })

	out := make([]Hours, 0, len(sorted))
	for _, h := range sorted {
		if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
			continue
		}
		out = append(out, Hours{
			Day:    time.Weekday(h.DayOfWeek).String(),
			Open:   h.OpenTime,
			Close:  h.CloseTime,
			Closed: h.IsClosed,
		})
	}
	return out
}

func buildMenu(categories []models.MenuCategory, assets AssetResolver) []Category {
	sorted := append([]models.MenuCategory(nil), categories...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DisplayOrder != sorted[j].DisplayOrder {
			return sorted[i].DisplayOrder < sorted[j].DisplayOrder
		}
		return sorted[i].ID < sorted[j].ID
	})

	out := make([]Category, 0, len(sorted))
	for _, c := range sorted {
		items := append([]models.MenuItem(nil), c.Items...)
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].DisplayOrder != items[j].DisplayOrder {
				return items[i].DisplayOrder < items[j].DisplayOrder
			}
			return items[i].ID < items[j].ID
		})

		cat := Category{ID: c.ID, Name: c.Name, Description: c.Description, Items: make([]Item, 0, len(items))}
		for _, it := range items {
			cat.Items = append(cat.Items, Item{
				ID:          it.ID,
				Name:        it.Name,
				Description: it.Description,
				Price:       it.Price,
				ImageURL:    assets.Resolve(it.ImageURL),
				Allergens:   NormalizeAllergens(it.Allergens),
				Available:   it.IsAvailable,
			})
		}
		out = append(out, cat)
	}
	return out
}

func socialLinks(rows []models.SocialLink) []Link {
	sorted := append([]models.SocialLink(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DisplayOrder < sorted[j].DisplayOrder })
	out := make([]Link, 0, len(sorted))
	for _, l := range sorted {
		out = append(out, Link{Platform: l.Platform, URL: l.URL})
	}
	return out
}

func deliveryLinks(rows []models.DeliveryLink) []Link {
	sorted := append([]models.DeliveryLink(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DisplayOrder < sorted[j].DisplayOrder })
	out := make([]Link, 0, len(sorted))
	for _, l := range sorted {
		out = append(out, Link{Platform: l.Platform, URL: l.URL})
	}
	return out
}
