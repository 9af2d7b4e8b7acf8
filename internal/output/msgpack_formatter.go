package output

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

// MsgpackFormatter serializes the reports as MessagePack using the JSON field names.
type MsgpackFormatter struct{}

func (m MsgpackFormatter) Name() string      { return "msgpack" }
func (m MsgpackFormatter) Extension() string { return "msgpack" }

func (m MsgpackFormatter) Format(reports []domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(reports); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeMsgpack reads reports written by MsgpackFormatter.
func DecodeMsgpack(data []byte) ([]domain.Report, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	var reports []domain.Report
	if err := dec.Decode(&reports); err != nil {
		return nil, err
	}
	return reports, nil
}
