package mutations

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/shopspring/decimal"

	"mortgage-portal/internal/derive"
	"mortgage-portal/internal/fieldpath"
	"mortgage-portal/internal/model"
)

var nullDecimalType = reflect.TypeOf(decimal.NullDecimal{})

// settleSection brings a freshly decoded section in line with what set_field
// stores field by field: amounts out of range are unset, masked inputs are
// filtered against the record they replace and derived fields are recomputed.
func settleSection(app, prev *model.Application, key string, at time.Time) []model.Message {
	var msgs []model.Message
	root := fieldpath.Pointer{key}
	err := fieldpath.Walk(app, root, func(p fieldpath.Pointer, rec reflect.Value) {
		msgs = append(msgs, settleRecord(prev, p, rec, at)...)
	})
	if err != nil {
		return append(msgs, pathMessage(root.String(), err))
	}
	return msgs
}

func settleRecord(prev *model.Application, p fieldpath.Pointer, rec reflect.Value, at time.Time) []model.Message {
	var msgs []model.Message
	t := rec.Type()

	for i := 0; i < t.NumField(); i++ {
		fv := rec.Field(i)
		if fv.Type() != nullDecimalType {
			continue
		}
		amount := fv.Interface().(decimal.NullDecimal)
		if amount.Valid && !derive.MoneyInRange(amount.Decimal) {
			fv.Set(reflect.ValueOf(decimal.NullDecimal{}))
			msgs = append(msgs, warning(CodeInvalidValue,
				fmt.Sprintf("%s/%s: amount out of range; field left unset", p, fieldpath.JSONName(t.Field(i)))))
		}
	}

	if _, ok := rec.Addr().Interface().(model.InputFilter); ok {
		filter := previousRecord(prev, p, t).Addr().Interface().(model.InputFilter)
		for i := 0; i < t.NumField(); i++ {
			fv := rec.Field(i)
			if fv.Kind() != reflect.String {
				continue
			}
			name := fieldpath.JSONName(t.Field(i))
			filtered, err := filter.FilterInput(name, fv.String())
			if errors.Is(err, model.ErrAccountNumberTooLong) {
				msgs = append(msgs, warning(CodeAccountNumberTooLong,
					fmt.Sprintf("%s/%s: account numbers have at most 8 digits; previous value kept", p, name)))
			}
			fv.SetString(filtered)
		}
	}

	if d, ok := rec.Addr().Interface().(model.Deriver); ok {
		for i := 0; i < t.NumField(); i++ {
			if errors.Is(d.Derive(fieldpath.JSONName(t.Field(i)), at), model.ErrInvalidDate) {
				msgs = append(msgs, warning(CodeInvalidDate,
					fmt.Sprintf("%s: invalid date; derived fields cleared", p)))
				break
			}
		}
	}

	return msgs
}

// previousRecord returns the record that sat at p before the section was
// replaced, or a blank one of type t when there was none.
func previousRecord(prev *model.Application, p fieldpath.Pointer, t reflect.Type) reflect.Value {
	if v, err := fieldpath.Resolve(prev, p); err == nil && v.Type() == t {
		return v
	}
	return reflect.New(t).Elem()
}
