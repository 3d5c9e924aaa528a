package ledger

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"despensa-backend/internal/database"
)

// Filter narrows a ledger query. Zero values mean "no restriction".
type Filter struct {
	From        *time.Time
	To          *time.Time
	ProductCode *int64
	Search      string // free text against the product name
	Kind        Kind   // restrict to one transaction kind
}

// Entry is one line item of a recorded transaction, tagged with its kind.
type Entry struct {
	Kind          Kind
	TransactionID uint
	Date          time.Time
	ProductCode   int64
	ProductName   string
	Quantity      int64
	UnitPrice     float64
}

func (e Entry) LineTotal() float64 {
	return float64(e.Quantity) * e.UnitPrice
}

// Iterator walks ledger entries lazily. The underlying query only runs on
// the first Next call; Reset closes the cursor so a later Next re-executes
// the query from the start.
type Iterator struct {
	filter Filter
	rows   *sql.Rows
	cur    Entry
	err    error
	done   bool
}

// Query builds a lazy iterator over sale, purchase and restock line items
// ordered by date then transaction id.
func Query(f Filter) *Iterator {
	return &Iterator{filter: f}
}

const entryColumns = `'%s' AS kind, h.id AS tx_id, d.id AS line_id, h.fecha AS fecha, d.cdb AS cdb,
	COALESCE(p.nombre, '') AS nombre, d.cantidad AS cantidad, d.%s AS precio`

func (it *Iterator) open() {
	type source struct {
		kind        Kind
		header      string
		detail      string
		headerRef   string
		priceColumn string
	}
	sources := []source{
		{KindSale, "venta", "venta_detalle", "venta", "precio_venta"},
		{KindPurchase, "compra", "compra_detalle", "compra", "precio_compra"},
		{KindRestock, "reposicion", "reposicion_detalle", "reposicion", "precio_compra"},
	}

	var selects []string
	var args []interface{}
	for _, src := range sources {
		if it.filter.Kind != "" && it.filter.Kind != src.kind {
			continue
		}
		var conds []string
		if it.filter.From != nil {
			conds = append(conds, "h.fecha >= ?")
			args = append(args, *it.filter.From)
		}
		if it.filter.To != nil {
			conds = append(conds, "h.fecha < ?")
			args = append(args, *it.filter.To)
		}
		if it.filter.ProductCode != nil {
			conds = append(conds, "d.cdb = ?")
			args = append(args, *it.filter.ProductCode)
		}
		if it.filter.Search != "" {
			conds = append(conds, "p.nombre LIKE ?")
			args = append(args, "%"+it.filter.Search+"%")
		}

		q := fmt.Sprintf("SELECT "+entryColumns+" FROM %s h JOIN %s d ON d.%s = h.id LEFT JOIN producto p ON p.cdb = d.cdb",
			src.kind, src.priceColumn, src.header, src.detail, src.headerRef)
		if len(conds) > 0 {
			q += " WHERE " + strings.Join(conds, " AND ")
		}
		selects = append(selects, q)
	}

	// an unrecognized Kind matches no source; yield nothing instead of
	// running a degenerate statement
	if len(selects) == 0 {
		it.done = true
		return
	}

	full := strings.Join(selects, " UNION ALL ") + " ORDER BY fecha ASC, tx_id ASC, line_id ASC"
	it.rows, it.err = database.DB.Raw(full, args...).Rows()
}

func (it *Iterator) Next() bool {
	if it.err != nil || it.done {
		return false
	}
	if it.rows == nil {
		it.open()
		if it.err != nil || it.done {
			return false
		}
	}
	if !it.rows.Next() {
		it.err = it.rows.Err()
		it.done = true
		_ = it.rows.Close()
		return false
	}

	var kind string
	var lineID uint
	var fecha interface{}
	e := Entry{}
	if err := it.rows.Scan(&kind, &e.TransactionID, &lineID, &fecha, &e.ProductCode, &e.ProductName, &e.Quantity, &e.UnitPrice); err != nil {
		it.err = err
		it.done = true
		_ = it.rows.Close()
		return false
	}
	e.Kind = Kind(kind)
	e.Date, it.err = decodeStoredTime(fecha)
	if it.err != nil {
		it.done = true
		_ = it.rows.Close()
		return false
	}
	it.cur = e
	return true
}

func (it *Iterator) Entry() Entry { return it.cur }

func (it *Iterator) Err() error { return it.err }

func (it *Iterator) Close() error {
	it.done = true
	if it.rows != nil {
		return it.rows.Close()
	}
	return nil
}

// Reset rewinds the iterator; the next call to Next re-runs the query.
func (it *Iterator) Reset() {
	if it.rows != nil {
		_ = it.rows.Close()
	}
	it.rows = nil
	it.err = nil
	it.done = false
	it.cur = Entry{}
}

// A UNION loses the declared column type, so the driver may hand the
// timestamp back as time.Time, text or raw bytes depending on the build.
func decodeStoredTime(v interface{}) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return parseStoredTime(t)
	case []byte:
		return parseStoredTime(string(t))
	}
	return time.Time{}, fmt.Errorf("unexpected timestamp value %v", v)
}

func parseStoredTime(s string) (time.Time, error) {
	layouts := []string{
		"2006-01-02 15:04:05.999999999-07:00",
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q: %w", s, lastErr)
}
