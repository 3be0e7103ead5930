package journal

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/quant/market"
	"github.com/rustyeddy/quant/pkg/id"
)

var csvHeader = []string{"trade_id", "instrument", "side", "quantity", "entry_price", "exit_price", "entry_time", "exit_time"}

// CSVWriter appends trades to a CSV file.
type CSVWriter struct {
	trades *csv.Writer
	tf     *os.File
}

// NewCSV creates path, truncating it, and writes the header row.
func NewCSV(path string) (*CSVWriter, error) {
	tf, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	tw := csv.NewWriter(tf)
	if err := tw.Write(csvHeader); err != nil {
		tf.Close()
		return nil, err
	}
	tw.Flush()
	if err := tw.Error(); err != nil {
		tf.Close()
		return nil, err
	}

	return &CSVWriter{trades: tw, tf: tf}, nil
}

func (j *CSVWriter) RecordTrade(_ context.Context, t market.Trade) error {
	err := j.trades.Write([]string{
		t.ID,
		t.Instrument,
		string(t.Side),
		f(t.Quantity),
		f(t.EntryPrice),
		f(t.ExitPrice),
		t.EntryTime.UTC().Format(time.RFC3339Nano),
		t.ExitTime.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVWriter) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	return j.tf.Close()
}

// LoadTradesCSV opens path and reads it with ReadTradesCSV.
func LoadTradesCSV(path string) ([]market.Trade, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trades: %w", err)
	}
	defer file.Close()

	trades, err := ReadTradesCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return trades, nil
}

// ReadTradesCSV reads trades in the NewCSV column layout, in file order. The
// header row is optional. Rows without a trade_id are given a ULID and every
// trade must pass market.Trade.Validate.
func ReadTradesCSV(r io.Reader) ([]market.Trade, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		out  []market.Trade
		line int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), csvHeader[0]) {
			continue
		}
		if len(rec) != len(csvHeader) {
			return nil, fmt.Errorf("line %d: want %d fields, got %d", line, len(csvHeader), len(rec))
		}

		t, err := parseTrade(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if t.ID == "" {
			t.ID = id.New()
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func parseTrade(rec []string) (market.Trade, error) {
	var (
		t   market.Trade
		err error
	)
	t.ID = strings.TrimSpace(rec[0])
	t.Instrument = strings.TrimSpace(rec[1])
	if t.Side, err = market.ParseSide(rec[2]); err != nil {
		return t, err
	}

	nums := []*float64{&t.Quantity, &t.EntryPrice, &t.ExitPrice}
	for i, p := range nums {
		col := 3 + i
		*p, err = strconv.ParseFloat(strings.TrimSpace(rec[col]), 64)
		if err != nil {
			return t, fmt.Errorf("%s: %w", csvHeader[col], err)
		}
	}

	if t.EntryTime, err = time.Parse(time.RFC3339, strings.TrimSpace(rec[6])); err != nil {
		return t, fmt.Errorf("entry_time: %w", err)
	}
	if t.ExitTime, err = time.Parse(time.RFC3339, strings.TrimSpace(rec[7])); err != nil {
		return t, fmt.Errorf("exit_time: %w", err)
	}
	return t, nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
