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
	"fmt"

	"github.com/samber/lo"
)

type PrimitiveType string

const (
	NULL    PrimitiveType = "null"
	BOOLEAN PrimitiveType = "boolean"
	INT     PrimitiveType = "int"
	LONG    PrimitiveType = "long"
	FLOAT   PrimitiveType = "float"
	DOUBLE  PrimitiveType = "double"
	BYTES   PrimitiveType = "bytes"
	STRING  PrimitiveType = "string"
)

type Kind uint8

const (
	KindPrimitive Kind = iota
	KindNullable
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindNullable:
		return "nullable"
	}
	return fmt.Sprintf("kind(%d)", k)
}

// TypeSpec is the normalized form of a field's "type" entry. A bare type
// name becomes a KindPrimitive spec, a union becomes a KindNullable spec
// of its first branch.
type TypeSpec struct {
	Kind      Kind
	Primitive PrimitiveType
}

func Primitive(primitive PrimitiveType) TypeSpec {
	return TypeSpec{Kind: KindPrimitive, Primitive: primitive}
}

func Nullable(primitive PrimitiveType) TypeSpec {
	return TypeSpec{Kind: KindNullable, Primitive: primitive}
}

func (t TypeSpec) IsNullable() bool {
	return t.Kind == KindNullable
}

func (t TypeSpec) String() string {
	if t.IsNullable() {
		return fmt.Sprintf("[%s, null]", t.Primitive)
	}
	return string(t.Primitive)
}

type Field struct {
	Name string
	Type TypeSpec
}

// Document is a parsed Avro record schema. Fields keep their declaration order.
type Document struct {
	Name      string
	Namespace string
	Fields    []Field
}

func (d *Document) FieldNames() []string {
	return lo.Map(d.Fields, func(field Field, _ int) string {
		return field.Name
	})
}
