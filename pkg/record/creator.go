package record

import "encoding/json"

// HasSingleMatchingCreator reports whether the creator field is a list with
// exactly one entry equal to name. The comparison is exact.
func (r Record) HasSingleMatchingCreator(name string) bool {
	v, ok := r.Field(FieldCreator)
	if !ok {
		return false
	}

	var creators []json.RawMessage
	if err := json.Unmarshal(v, &creators); err != nil || len(creators) != 1 {
		return false
	}

	var creator string
	if err := json.Unmarshal(creators[0], &creator); err != nil {
		return false
	}

	return creator == name
}

// HasSingleMatchingCreator is the function form of Record.HasSingleMatchingCreator.
func HasSingleMatchingCreator(r Record, name string) bool {
	return r.HasSingleMatchingCreator(name)
}
