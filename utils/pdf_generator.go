package utils

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/shopspring/decimal"

	"shippingerp/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

var statementTmpl = template.Must(template.New("roro_statement.html").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	ParseFS(templateFiles, "templates/roro_statement.html"))

type statementLine struct {
	Label  string
	Qty    string
	Rate   string
	Amount string
}

type statementDetail struct {
	Model, ChassisNo, EL, HBL string
}

type statementData struct {
	ID          int64
	ProgressID  int64
	GeneratedAt string
	Creator     string
	BKNo        string
	Partner     string
	Shipper     string
	Destination string
	Payment     string
	Line        string
	Vessel      string
	Doc         string
	ETA         string
	ETD         string
	ATD         string
	Cargo       []statementLine
	Charges     []statementLine
	USDCost     string
	Sell        string
	Rate        string
	ProfitUSD   string
	ProfitKRW   string
	ProfitWords string
	Details     []statementDetail
}

func str(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func date(d *models.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func list(v []string) string {
	if len(v) == 0 {
		return "-"
	}
	return strings.Join(v, ", ")
}

func intDec(v *int64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(*v)
}

func floatDec(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

// money formats with thousands separators and at most two decimals.
func money(d decimal.Decimal) string {
	s := d.Round(2).StringFixed(2)
	s = strings.TrimSuffix(s, ".00")

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

func newStatementData(ro *models.ProgressRoRo, now time.Time) statementData {
	c := ro.RoRoCosts
	data := statementData{
		ID:          ro.ID,
		ProgressID:  ro.ProgressID,
		GeneratedAt: now.Format("02-Jan-2006 15:04"),
		BKNo:        str(ro.BKNo),
		Partner:     str(ro.Partner),
		Shipper:     str(ro.Shipper),
		Destination: str(ro.Destination),
		Payment:     str(ro.Payment),
		Line:        list(ro.Line),
		Vessel:      list(ro.Vessel),
		Doc:         list(ro.Doc),
		ETA:         date(ro.ETA),
		ETD:         date(ro.ETD),
		ATD:         date(ro.ATD),
		Sell:        money(intDec(c.Sell)),
		Rate:        money(floatDec(c.Rate)),
		ProfitUSD:   money(decimal.NewFromFloat(ro.ProfitUSD)),
		ProfitKRW:   money(decimal.NewFromFloat(ro.ProfitKRW)),
		ProfitWords: AmountToDollarWords(ro.ProfitUSD),
	}
	if ro.Creator != nil {
		data.Creator = ro.Creator.Username
	}

	total := decimal.Zero
	addCargo := func(label string, qty, rate decimal.Decimal) {
		amount := qty.Mul(rate)
		total = total.Add(amount)
		data.Cargo = append(data.Cargo, statementLine{Label: label, Qty: money(qty), Rate: money(rate), Amount: money(amount)})
	}
	addCargo("Small", intDec(c.Small), intDec(c.BuySmall))
	addCargo("S-SUV", intDec(c.SSUV), intDec(c.BuySSUV))
	addCargo("SUV", intDec(c.SUV), intDec(c.BuySUV))
	addCargo("RV / Cargo", intDec(c.RVCargo), intDec(c.BuyRVCargo))
	addCargo("Special", intDec(c.Special), intDec(c.BuySpecial))
	addCargo("CBM", floatDec(c.CBM), floatDec(c.BuyCBM))
	data.USDCost = money(total)

	data.Charges = []statementLine{
		{Label: "HC (KRW)", Amount: money(intDec(c.HC))},
		{Label: "WFG (KRW)", Amount: money(intDec(c.WFG))},
		{Label: "Security (KRW)", Amount: money(intDec(c.Security))},
		{Label: "Carrier (KRW)", Amount: money(intDec(c.Carrier))},
		{Label: "Partner fee (USD)", Amount: money(intDec(c.PartnerFee))},
		{Label: "Other (USD)", Amount: money(intDec(c.Other))},
	}

	for _, d := range ro.Details {
		el := "-"
		if d.EL != nil {
			el = strconv.FormatBool(*d.EL)
		}
		data.Details = append(data.Details, statementDetail{
			Model: str(d.Model), ChassisNo: str(d.ChassisNo), EL: el, HBL: str(d.HBL),
		})
	}
	return data
}

// RenderRoRoStatement returns the HTML of a RoRo statement.
func RenderRoRoStatement(ro *models.ProgressRoRo, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := statementTmpl.Execute(&buf, newStatementData(ro, now)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTMLToPDF prints an HTML document to an A4 PDF with headless Chrome.
// chromePath may be empty to let chromedp find the browser.
func HTMLToPDF(ctx context.Context, html []byte, chromePath string) ([]byte, error) {
	tmp, err := os.CreateTemp("", "roro_*.html")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(taskCtx,
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return pdfBuf, nil
}

// GenerateRoRoPDF renders the statement of one RoRo line as a PDF.
func GenerateRoRoPDF(ctx context.Context, ro *models.ProgressRoRo, chromePath string) ([]byte, error) {
	html, err := RenderRoRoStatement(ro, time.Now())
	if err != nil {
		return nil, err
	}
	return HTMLToPDF(ctx, html, chromePath)
}
