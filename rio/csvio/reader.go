// Package csvio reads and writes tables as CSV with a header row.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/araddon/dateparse"
	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/pkg/nano"
)

// Read loads a CSV file into a table.  The first row names the
// columns.  Each column's type is inferred from its values, narrowest
// first: int64, float64, bool, time, then string.  Empty fields are
// null and do not vote on the type.
func Read(r io.Reader) (*rdata.Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("empty csv file")
		}
		return nil, err
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	cols := make([]rdata.Column, len(header))
	for j, name := range header {
		col, err := buildColumn(name, rows, j)
		if err != nil {
			return nil, err
		}
		cols[j] = col
	}
	return rdata.NewTable(cols...)
}

func buildColumn(name string, rows [][]string, j int) (rdata.Column, error) {
	typ := inferType(rows, j)
	b := rdata.NewColumnBuilder(name, typ)
	for _, row := range rows {
		s := row[j]
		if s == "" {
			b.AppendNull()
			continue
		}
		v, err := parseValue(typ, s)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		if err := b.Append(v); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

func inferType(rows [][]string, j int) rdata.Type {
	isInt, isFloat, isBool, isTime := true, true, true, true
	nonNull := false
	for _, row := range rows {
		s := row[j]
		if s == "" {
			continue
		}
		nonNull = true
		if isInt {
			_, err := strconv.ParseInt(s, 10, 64)
			isInt = err == nil
		}
		if isFloat {
			_, err := strconv.ParseFloat(s, 64)
			isFloat = err == nil
		}
		if isBool {
			_, err := strconv.ParseBool(s)
			isBool = err == nil
		}
		if isTime {
			isTime = looksLikeTime(s)
			if isTime {
				_, err := dateparse.ParseAny(s)
				isTime = err == nil
			}
		}
	}
	switch {
	case !nonNull:
		return rdata.TypeString
	case isInt:
		return rdata.TypeInt64
	case isFloat:
		return rdata.TypeFloat64
	case isBool:
		return rdata.TypeBool
	case isTime:
		return rdata.TypeTime
	}
	return rdata.TypeString
}

// looksLikeTime gates date parsing on a leading digit and a plausible
// length so bare words like "May" cannot turn a string column into
// times.
func looksLikeTime(s string) bool {
	return len(s) >= 8 && s[0] >= '0' && s[0] <= '9'
}

func parseValue(typ rdata.Type, s string) (rdata.Value, error) {
	switch typ {
	case rdata.TypeInt64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return rdata.Value{}, err
		}
		return rdata.NewInt64(v), nil
	case rdata.TypeFloat64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return rdata.Value{}, err
		}
		return rdata.NewFloat64(v), nil
	case rdata.TypeBool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return rdata.Value{}, err
		}
		return rdata.NewBool(v), nil
	case rdata.TypeTime:
		t, err := dateparse.ParseAny(s)
		if err != nil {
			return rdata.Value{}, err
		}
		return rdata.NewTime(nano.TimeToTs(t)), nil
	}
	return rdata.NewString(s), nil
}
