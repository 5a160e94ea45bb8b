package request

import (
	"bytes"
	"net/url"
	"testing"
)

func TestBody_Encode(t *testing.T) {
	tests := []struct {
		name          string
		body          Body
		expectPayload []byte
		expectType    string
	}{
		{
			name:          "none",
			body:          NoBody(),
			expectPayload: nil,
			expectType:    "",
		},
		{
			name:          "zero value acts as none",
			body:          Body{},
			expectPayload: nil,
			expectType:    "",
		},
		{
			name:          "raw bytes pass through unchanged",
			body:          RawBody([]byte{0x66, 0x6f, 0x6f}),
			expectPayload: []byte{0x66, 0x6f, 0x6f},
			expectType:    "application/octet-stream",
		},
		{
			name:          "raw empty slice",
			body:          RawBody([]byte{}),
			expectPayload: []byte{},
			expectType:    "application/octet-stream",
		},
		{
			name:          "text",
			body:          TextBody("hello"),
			expectPayload: []byte("hello"),
			expectType:    "text/plain;charset=utf-8",
		},
		{
			name:          "json object",
			body:          JSONBody(map[string]interface{}{"a": 1}),
			expectPayload: []byte(`{"a":1}`),
			expectType:    "application/json;charset=utf-8",
		},
		{
			name:          "json string is marshaled not passed through",
			body:          JSONBody("hello"),
			expectPayload: []byte(`"hello"`),
			expectType:    "application/json;charset=utf-8",
		},
		{
			name:          "json null",
			body:          JSONBody(nil),
			expectPayload: []byte(`null`),
			expectType:    "application/json;charset=utf-8",
		},
		{
			name:          "form single pair",
			body:          FormBody(map[string]string{"user": "bob marley"}),
			expectPayload: []byte("user=bob+marley"),
			expectType:    "application/x-www-form-urlencoded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, contentType, err := tt.body.Encode()
			if err != nil {
				t.Fatalf("Error encoding: %v", err)
			}

			if !bytes.Equal(payload, tt.expectPayload) {
				t.Errorf("Expected payload %q, got %q", tt.expectPayload, payload)
			}
			if contentType != tt.expectType {
				t.Errorf("Expected content type %q, got %q", tt.expectType, contentType)
			}
		})
	}
}

func TestBody_EncodeDeterministic(t *testing.T) {
	bodies := []Body{
		RawBody([]byte{1, 2, 3}),
		TextBody("same text"),
		JSONBody(map[string]interface{}{"b": 2, "a": 1}),
		FormBody(map[string]string{"number": "42", "text": "foo"}),
	}

	for _, body := range bodies {
		first, firstType, err := body.Encode()
		if err != nil {
			t.Fatalf("Error encoding %s body: %v", body.Kind(), err)
		}
		second, secondType, err := body.Encode()
		if err != nil {
			t.Fatalf("Error re-encoding %s body: %v", body.Kind(), err)
		}

		if !bytes.Equal(first, second) {
			t.Errorf("%s body not deterministic: %q vs %q", body.Kind(), first, second)
		}
		if firstType != secondType {
			t.Errorf("%s content type not deterministic: %q vs %q", body.Kind(), firstType, secondType)
		}
	}
}

func TestBody_EncodeForm(t *testing.T) {
	payload, contentType, err := FormBody(map[string]string{
		"number": "42",
		"text":   "foo",
	}).Encode()
	if err != nil {
		t.Fatalf("Error encoding form: %v", err)
	}

	if contentType != "application/x-www-form-urlencoded" {
		t.Errorf("Expected form content type, got %s", contentType)
	}

	// Pair order is an encoding detail; the decoded values are not.
	values, err := url.ParseQuery(string(payload))
	if err != nil {
		t.Fatalf("Error parsing form payload %q: %v", payload, err)
	}
	if values.Get("number") != "42" {
		t.Errorf("Expected number=42, got %s", values.Get("number"))
	}
	if values.Get("text") != "foo" {
		t.Errorf("Expected text=foo, got %s", values.Get("text"))
	}
	if len(values) != 2 {
		t.Errorf("Expected 2 form pairs, got %d: %v", len(values), values)
	}
}

func TestBody_EncodeFormEscapes(t *testing.T) {
	payload, _, err := FormBody(map[string]string{"q": "a&b=c d"}).Encode()
	if err != nil {
		t.Fatalf("Error encoding form: %v", err)
	}

	values, err := url.ParseQuery(string(payload))
	if err != nil {
		t.Fatalf("Error parsing form payload %q: %v", payload, err)
	}
	if values.Get("q") != "a&b=c d" {
		t.Errorf("Escaping lost the value: got %q", values.Get("q"))
	}
}

func TestBody_EncodeJSONFailure(t *testing.T) {
	_, _, err := JSONBody(func() {}).Encode()
	if err == nil {
		t.Fatal("Expected error marshaling a func value, got nil")
	}
}

func TestDetectBody(t *testing.T) {
	tests := []struct {
		name       string
		data       interface{}
		expectKind BodyKind
	}{
		{name: "nil means no body", data: nil, expectKind: BodyNone},
		{name: "byte slice means raw", data: []byte("abc"), expectKind: BodyRaw},
		{name: "string means text", data: "abc", expectKind: BodyText},
		{name: "map means json", data: map[string]interface{}{"a": 1}, expectKind: BodyJSON},
		{name: "struct means json", data: struct{ Name string }{"x"}, expectKind: BodyJSON},
		{name: "number means json", data: 42, expectKind: BodyJSON},
		{name: "existing body used as given", data: FormBody(map[string]string{"a": "1"}), expectKind: BodyForm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectBody(tt.data).Kind(); got != tt.expectKind {
				t.Errorf("Expected kind %s, got %s", tt.expectKind, got)
			}
		})
	}
}

func TestBodyKind_String(t *testing.T) {
	kinds := map[BodyKind]string{
		BodyNone:    "none",
		BodyRaw:     "raw",
		BodyText:    "text",
		BodyJSON:    "json",
		BodyForm:    "form",
		BodyKind(9): "unknown",
	}

	for kind, expect := range kinds {
		if kind.String() != expect {
			t.Errorf("Expected %s, got %s", expect, kind.String())
		}
	}
}
