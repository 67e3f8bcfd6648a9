package handler

import (
	"github.com/nikolayk812/broka-order/internal/catalog"
	"github.com/nikolayk812/broka-order/internal/clock"
	"github.com/nikolayk812/broka-order/internal/domain"
	"github.com/nikolayk812/broka-order/internal/storefront"
)

// Prices travel as fixed two-decimal strings ("28.90") so clients never see
// binary floating point.

type addOnView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type itemView struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       string      `json:"price"`
	Image       string      `json:"image"`
	AddOns      []addOnView `json:"add_ons"`
}

type sectionView struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle"`
	Items    []itemView `json:"items"`
}

type statusView struct {
	Open     bool   `json:"open"`
	Message  string `json:"message"`
	Hours    string `json:"hours"`
	Now      string `json:"now"`
	NowLabel string `json:"now_label"`
}

type lineView struct {
	Index     int         `json:"index"`
	ItemID    string      `json:"item_id"`
	Name      string      `json:"name"`
	AddOns    []addOnView `json:"add_ons"`
	Quantity  int         `json:"quantity"`
	UnitPrice string      `json:"unit_price"`
	Total     string      `json:"total"`
}

type cartView struct {
	Lines      []lineView `json:"lines"`
	Total      string     `json:"total"`
	TotalLabel string     `json:"total_label"`
	ItemCount  int        `json:"item_count"`
	ItemLabel  string     `json:"item_label"`
}

type checkoutView struct {
	URL       string `json:"url"`
	Message   string `json:"message"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
	Notice    string `json:"notice"`
}

func toAddOnViews(addOns []domain.MenuAddOn) []addOnView {
	out := make([]addOnView, 0, len(addOns))
	for _, a := range addOns {
		out = append(out, addOnView{ID: a.ID, Name: a.Name, Price: a.Price.Fixed()})
	}
	return out
}

func toSectionViews(sections []catalog.Section) []sectionView {
	out := make([]sectionView, 0, len(sections))
	for _, s := range sections {
		items := make([]itemView, 0, len(s.Items))
		for _, item := range s.Items {
			items = append(items, itemView{
				ID:          item.ID,
				Name:        item.Name,
				Description: item.Description,
				Price:       item.Price.Fixed(),
				Image:       item.Image,
				AddOns:      toAddOnViews(item.AddOns),
			})
		}
		out = append(out, sectionView{ID: s.ID, Title: s.Title, Subtitle: s.Subtitle, Items: items})
	}
	return out
}

func toStatusView(s clock.Status) statusView {
	now := s.Now.Format("15:04")
	return statusView{
		Open:     s.Open,
		Message:  s.Message,
		Hours:    s.Hours,
		Now:      now,
		NowLabel: "Agora: " + now,
	}
}

func toCartView(cart domain.Cart) cartView {
	lines := make([]lineView, 0, len(cart.Lines))
	for i, l := range cart.Lines {
		lines = append(lines, lineView{
			Index:     i,
			ItemID:    l.Item.ID,
			Name:      l.Item.Name,
			AddOns:    toAddOnViews(l.AddOns),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice().Fixed(),
			Total:     domain.LineTotal(l).Fixed(),
		})
	}

	total := cart.Total()
	count := cart.ItemCount()
	return cartView{
		Lines:      lines,
		Total:      total.Fixed(),
		TotalLabel: total.String(),
		ItemCount:  count,
		ItemLabel:  storefront.ItemLabel(count),
	}
}

func toCheckoutView(r storefront.Receipt) checkoutView {
	return checkoutView{
		URL:       r.URL,
		Message:   r.Message,
		Total:     r.Total.Fixed(),
		ItemCount: r.ItemCount,
		Notice:    storefront.NoticeSent,
	}
}
