// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/NVIDIA/hostmetrics/pkg/measurement"
)

const defaultValueKey = "value"

// printer groups digits of numeric readings ("1,048,576").
var printer = message.NewPrinter(language.English)

func writeTable(w io.Writer, data any) error {
	switch v := data.(type) {
	case MeasurementLister:
		return writeMeasurements(w, v.MeasurementList())
	case *measurement.Measurement:
		return writeMeasurements(w, []*measurement.Measurement{v})
	case []*measurement.Measurement:
		return writeMeasurements(w, v)
	default:
		return writeFlat(w, data)
	}
}

func writeMeasurements(w io.Writer, ms []*measurement.Measurement) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tSUBTYPE\tKEY\tVALUE")
	fmt.Fprintln(tw, "----\t-------\t---\t-----")
	for _, m := range ms {
		if m == nil {
			continue
		}
		for i := range m.Subtypes {
			st := &m.Subtypes[i]
			for _, key := range st.Keys() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Type, st.Name, key, formatReading(st.Get(key)))
			}
		}
	}
	return tw.Flush()
}

func formatReading(r measurement.Reading) string {
	if r == nil {
		return ""
	}
	switch v := r.Any().(type) {
	case int, int64, uint64:
		return printer.Sprintf("%d", v)
	case float64:
		return printer.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func writeFlat(w io.Writer, data any) error {
	flat := make(map[string]any)
	flattenValue(flat, reflect.ValueOf(data), "")
	if len(flat) == 0 {
		fmt.Fprintln(w, "<empty>")
		return nil
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	fmt.Fprintln(tw, "-----\t-----")
	for _, key := range keys {
		fmt.Fprintf(tw, "%s\t%v\n", key, flat[key])
	}
	return tw.Flush()
}

func flattenValue(out map[string]any, val reflect.Value, prefix string) {
	if !val.IsValid() {
		return
	}

	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			if prefix != "" {
				out[prefix] = nil
			}
			return
		}
		val = val.Elem()
	}

	//nolint:exhaustive // We handle the common cases explicitly; all others go to default
	switch val.Kind() {
	case reflect.Struct:
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			name := field.Name
			if field.Anonymous {
				name = ""
			}
			flattenValue(out, val.Field(i), joinKey(prefix, name))
		}
	case reflect.Map:
		for _, mapKey := range val.MapKeys() {
			key := joinKey(prefix, fmt.Sprintf("%v", mapKey.Interface()))
			flattenValue(out, val.MapIndex(mapKey), key)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < val.Len(); i++ {
			key := joinKey(prefix, fmt.Sprintf("[%d]", i))
			flattenValue(out, val.Index(i), key)
		}
	default:
		if prefix == "" {
			prefix = defaultValueKey
		}
		out[prefix] = val.Interface()
	}
}

func joinKey(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	if suffix == "" {
		return prefix
	}
	return prefix + "." + suffix
}
