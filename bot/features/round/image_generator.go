package round

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"lotobot/bot/common"
	"lotobot/domain/entities"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
)

const maxImageRows = 20

// tableColumn is one column of the standings table
type tableColumn struct {
	Header    string
	XPosition int
	ColorRGB  [3]float64
}

// tableStyle defines the visual style of the table
type tableStyle struct {
	Width     int
	MinHeight int
	Padding   int
	RowHeight int
	Medals    [3][4]float64 // RGBA row tint for the top three
}

// StandingsImageGenerator renders round standings as a PNG table
type StandingsImageGenerator struct {
	style tableStyle
}

// NewStandingsImageGenerator creates a generator with the default style
func NewStandingsImageGenerator() *StandingsImageGenerator {
	return &StandingsImageGenerator{
		style: tableStyle{
			Width:     360,
			MinHeight: 140,
			Padding:   15,
			RowHeight: 26,
			Medals: [3][4]float64{
				{1, 0.84, 0, 0.1},
				{0.8, 0.8, 0.8, 0.08},
				{0.8, 0.5, 0.2, 0.06},
			},
		},
	}
}

// standingsRows orders entries by balance, best first, keeping first-seen order on ties
func standingsRows(entries []*entities.LedgerEntry) []*entities.LedgerEntry {
	rows := make([]*entities.LedgerEntry, len(entries))
	copy(rows, entries)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].WinBalance > rows[j].WinBalance
	})
	if len(rows) > maxImageRows {
		rows = rows[:maxImageRows]
	}
	return rows
}

// Generate renders the standings of a round's ledger
func (g *StandingsImageGenerator) Generate(title string, entries []*entities.LedgerEntry) ([]byte, error) {
	start := time.Now()
	rows := standingsRows(entries)
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("row_count", len(rows)).
			Debug("Standings image generation completed")
	}()

	p := g.style.Padding
	columns := []tableColumn{
		{Header: "#", XPosition: p, ColorRGB: [3]float64{0.85, 0.85, 0.9}},
		{Header: "Player", XPosition: p + 28, ColorRGB: [3]float64{1, 1, 1}},
		{Header: "Tokens", XPosition: p + 190, ColorRGB: [3]float64{1, 1, 1}},
		{Header: "Games", XPosition: p + 270, ColorRGB: [3]float64{0.85, 0.85, 1}},
	}

	// Title (25px) + header (30px) + rows + bottom padding
	height := 25 + 25 + 30 + len(rows)*g.style.RowHeight + 15
	if height < g.style.MinHeight {
		height = g.style.MinHeight
	}

	dc := gg.NewContext(g.style.Width, height)
	dc.SetFillRule(gg.FillRuleWinding)

	for i := 0; i < height; i++ {
		t := float64(i) / float64(height)
		dc.SetRGB(0.02+t*0.03, 0.02+t*0.05, 0.05+t*0.1)
		dc.DrawLine(0, float64(i), float64(g.style.Width), float64(i))
		dc.Stroke()
	}

	titleFace, err := loadFont(gobold.TTF, 13)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	face, err := loadFont(gomono.TTF, 11)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	dc.SetFontFace(titleFace)
	dc.SetRGB(1, 0.84, 0)
	dc.DrawStringAnchored(title, float64(g.style.Width)/2, 22, 0.5, 0)

	dc.SetFontFace(face)
	y := float64(50)

	dc.SetRGBA(0.3, 0.3, 0.4, 0.4)
	dc.DrawRectangle(0, y-15, float64(g.style.Width), 20)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	for _, col := range columns {
		drawSharpText(dc, col.Header, float64(col.XPosition), y)
	}

	dc.SetRGBA(0.6, 0.6, 0.7, 0.7)
	dc.SetLineWidth(1)
	dc.DrawLine(0, y+8, float64(g.style.Width), y+8)
	dc.Stroke()

	y += 30
	if len(rows) == 0 {
		dc.SetRGB(0.7, 0.7, 0.7)
		dc.DrawStringAnchored("No games settled yet", float64(g.style.Width)/2, y, 0.5, 0)
	}

	for i, entry := range rows {
		if i < len(g.style.Medals) {
			c := g.style.Medals[i]
			dc.SetRGBA(c[0], c[1], c[2], c[3])
		} else {
			dc.SetRGBA(0.5, 0.5, 0.6, 0.02)
		}
		dc.DrawRectangle(0, y-15, float64(g.style.Width), float64(g.style.RowHeight))
		dc.Fill()

		cells := []string{
			fmt.Sprintf("%d", i+1),
			shortName(entry.DisplayName, 18),
			common.FormatTokenDelta(entry.WinBalance),
			fmt.Sprintf("%d", entry.ParticipationCount),
		}

		for j, col := range columns {
			switch {
			case col.Header == "Tokens" && strings.HasPrefix(cells[j], "+"):
				dc.SetRGB(0.4, 1, 0.4)
			case col.Header == "Tokens" && strings.HasPrefix(cells[j], "-"):
				dc.SetRGB(1, 0.4, 0.4)
			case col.Header == "Tokens":
				dc.SetRGB(0.8, 0.8, 0.8)
			default:
				dc.SetRGB(col.ColorRGB[0], col.ColorRGB[1], col.ColorRGB[2])
			}
			drawSharpText(dc, cells[j], float64(col.XPosition), y)
		}

		y += float64(g.style.RowHeight)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func shortName(name string, max int) string {
	if utf8.RuneCountInString(name) <= max {
		return name
	}
	return string([]rune(name)[:max-1]) + "…"
}

// drawSharpText draws text over a faint offset shadow
func drawSharpText(dc *gg.Context, text string, x, y float64) {
	dc.Push()
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawString(text, x+0.5, y+0.5)
	dc.Pop()

	dc.DrawString(text, x, y)
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
