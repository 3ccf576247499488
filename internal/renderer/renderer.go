package renderer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ReceiptData is everything a rendered receipt needs. The renderer never
// reads the database; callers assemble this after the financial transaction
// has committed.
type ReceiptData struct {
	ReceiptID    int32
	PeriodLabel  string
	AmountCents  int64
	PropertyName string
	Address      string
	TenantNames  []string
	LandlordName string
	GeneratedOn  time.Time
}

// DocumentRenderer produces a receipt document and returns the storage key
// of the rendered file. Implementations decide the actual format.
type DocumentRenderer interface {
	RenderReceipt(data ReceiptData) (string, error)
}

// FileRenderer writes receipts as self-contained HTML files under a local
// directory. It stands in for a full PDF engine behind the same interface.
type FileRenderer struct {
	outputDir string
}

func NewFileRenderer(outputDir string) (*FileRenderer, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create receipt output dir: %w", err)
	}
	return &FileRenderer{outputDir: outputDir}, nil
}

func (r *FileRenderer) RenderReceipt(data ReceiptData) (string, error) {
	key := fmt.Sprintf("receipt-%d-%s.html", data.ReceiptID, data.GeneratedOn.Format("20060102"))

	tenants := ""
	for i, name := range data.TenantNames {
		if i > 0 {
			tenants += ", "
		}
		tenants += name
	}

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Rent receipt %s</title></head>
<body>
<h1>Rent receipt</h1>
<p>Period: %s</p>
<p>Property: %s, %s</p>
<p>Tenant(s): %s</p>
<p>Amount received: %.2f</p>
<p>Issued by %s on %s</p>
</body>
</html>
`,
		data.PeriodLabel,
		data.PeriodLabel,
		data.PropertyName,
		data.Address,
		tenants,
		float64(data.AmountCents)/100,
		data.LandlordName,
		data.GeneratedOn.Format("2006-01-02"),
	)

	path := filepath.Join(r.outputDir, key)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write receipt file: %w", err)
	}
	return key, nil
}
