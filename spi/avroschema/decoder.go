/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements. See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package avroschema

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/go-errors/errors"
	"github.com/pivotal-dil/avro-ddl/spi/config"
	"github.com/pivotal-dil/avro-ddl/spi/encoding"
)

type rawDocument struct {
	Name      *string     `json:"name"`
	Namespace *string     `json:"namespace"`
	Fields    *[]rawField `json:"fields"`
}

type rawField struct {
	Name *string             `json:"name"`
	Type encoding.RawMessage `json:"type"`
}

type Decoder struct {
	json   *encoding.JsonDecoder
	unions config.UnionPolicy
}

func NewDecoderWithConfig(
	c *config.Config,
) (*Decoder, error) {

	unions, err := config.ResolveUnionPolicy(c)
	if err != nil {
		return nil, err
	}
	return NewDecoder(encoding.NewJsonDecoderWithConfig(c), unions), nil
}

func NewDecoder(
	json *encoding.JsonDecoder, unions config.UnionPolicy,
) *Decoder {

	return &Decoder{
		json:   json,
		unions: unions,
	}
}

// Decode parses a schema document and normalizes every field type into
// a TypeSpec. Whether a primitive type is known isn't checked here.
func (d *Decoder) Decode(
	data []byte,
) (*Document, error) {

	if !utf8.Valid(data) {
		return nil, errors.Wrap(&ParseError{Err: errors.Errorf("document isn't valid UTF-8")}, 0)
	}
	if !d.json.Valid(data) {
		return nil, errors.Wrap(&ParseError{Err: errors.Errorf("invalid JSON document")}, 0)
	}

	raw := rawDocument{}
	if err := d.json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(&ParseError{Err: err}, 0)
	}

	if raw.Namespace == nil {
		return nil, errors.Wrap(&MissingFieldError{Path: "namespace"}, 0)
	}
	if raw.Fields == nil {
		return nil, errors.Wrap(&MissingFieldError{Path: "fields"}, 0)
	}

	fields := make([]Field, 0, len(*raw.Fields))
	for i, rf := range *raw.Fields {
		field, err := d.decodeField(i, rf)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	document := &Document{
		Namespace: *raw.Namespace,
		Fields:    fields,
	}
	if raw.Name != nil {
		document.Name = *raw.Name
	}
	return document, nil
}

func (d *Decoder) decodeField(
	index int, rf rawField,
) (Field, error) {

	if rf.Name == nil {
		return Field{}, errors.Wrap(&MissingFieldError{Path: fmt.Sprintf("fields[%d].name", index)}, 0)
	}

	typeSpec := bytes.TrimSpace(rf.Type)
	if len(typeSpec) == 0 {
		return Field{}, errors.Wrap(&MissingFieldError{Path: fmt.Sprintf("fields[%d].type", index)}, 0)
	}

	if typeSpec[0] != '[' {
		return Field{Name: *rf.Name, Type: Primitive(d.primitiveType(typeSpec))}, nil
	}

	branches := make([]encoding.RawMessage, 0, 2)
	if err := d.json.Unmarshal(typeSpec, &branches); err != nil {
		return Field{}, errors.Wrap(&ParseError{Err: err}, 0)
	}

	if len(branches) == 0 {
		return Field{}, errors.Wrap(&MissingFieldError{Path: fmt.Sprintf("fields[%d].type[0]", index)}, 0)
	}

	if len(branches) > 2 && d.unions == config.UnionStrict {
		return Field{}, errors.Wrap(&UnsupportedUnionError{Field: *rf.Name, Branches: len(branches)}, 0)
	}

	return Field{Name: *rf.Name, Type: Nullable(d.primitiveType(branches[0]))}, nil
}

// primitiveType extracts a type name from a JSON string. Anything else
// (inline records, arrays, null) is kept as its raw JSON text, which
// no type mapping will ever accept.
func (d *Decoder) primitiveType(
	raw encoding.RawMessage,
) PrimitiveType {

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var name string
		if err := d.json.Unmarshal(raw, &name); err == nil {
			return PrimitiveType(name)
		}
	}
	return PrimitiveType(raw)
}
