// Package json wraps sonic so the rest of the code base shares one JSON configuration.
package json

import (
	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

func Marshal(v interface{}) ([]byte, error) {
	return api.Marshal(v)
}

func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

func Unmarshal(data []byte, v interface{}) error {
	return api.Unmarshal(data, v)
}
