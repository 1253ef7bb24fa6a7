package catalog

import (
	"html/template"
	"io"

	"warungchat/internal/menu"
)

var templates = template.Must(template.New("catalog").Funcs(template.FuncMap{
	"ms": func(c Card) int64 { return c.AnimationDelay.Milliseconds() },
}).Parse(`
{{define "image"}}{{if .HasImage}}<img src="{{.Image}}" alt="{{.Title}}" class="menu-image" loading="lazy" onerror="this.style.display='none'; this.nextElementSibling.style.display='flex';">
<div class="no-image-placeholder" style="display:none;">image</div>{{else}}<div class="no-image-placeholder">image</div>{{end}}{{end}}

{{define "cards"}}{{if not .}}<div class="empty-state">
  <p>Tidak ada menu yang ditemukan</p>
  <p class="empty-subtitle">Coba kata kunci yang berbeda!</p>
</div>{{else}}{{range .}}<div class="menu-item" style="animation-delay: {{ms .}}ms" data-key="{{.Key}}">
  <div class="menu-image-container">
    {{template "image" .}}
    {{if .Category}}<div class="menu-category">{{.Category}}</div>{{end}}
  </div>
  <div class="menu-content">
    <h3>{{.Title}}</h3>
    <div class="menu-price">{{.Price}}</div>
    {{if .Rating}}<div class="menu-rating">{{.Rating}}</div>{{end}}
  </div>
  <div class="menu-actions">
    <button class="view-detail-btn" data-index="{{.Index}}">Detail</button>
    <button class="add-to-cart-btn" data-index="{{.Index}}">Tambah</button>
  </div>
</div>
{{end}}{{end}}{{end}}

{{define "detail"}}<div class="menu-detail">
  {{template "image" .Card}}
  {{if .Category}}<div class="detail-category">📂 {{.Category}}</div>{{end}}
  <div class="detail-price">💰 {{.Price}}</div>
  {{if .Rating}}<div class="detail-rating">{{.Rating}} {{.Stars}}</div>{{end}}
  {{if .Ingredients}}<h4>🥘 Bahan-bahan</h4>
  <p>{{.Ingredients}}</p>{{end}}
  {{if .Description}}<h4>📝 Deskripsi</h4>
  <p>{{.Description}}</p>{{end}}
  <button class="add-to-cart-btn enhanced" data-key="{{.Key}}">Tambah ke Keranjang</button>
</div>{{end}}
`))

// RenderHTML writes the card grid. All record text is escaped by the template.
func RenderHTML(w io.Writer, records []menu.Record) error {
	return templates.ExecuteTemplate(w, "cards", Cards(records))
}

// RenderDetailHTML writes the detail overlay body.
func RenderDetailHTML(w io.Writer, r menu.Record) error {
	return templates.ExecuteTemplate(w, "detail", NewDetail(&r))
}
