package types

import (
	"bytes"
	"strconv"
)

// LooseString accepts a JSON string, number or null and keeps its text form.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*s = LooseString(unquoted)
		return nil
	}
	*s = LooseString(data)
	return nil
}

func (s LooseString) String() string {
	return string(s)
}
