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

package ddl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-errors/errors"
	"github.com/pivotal-dil/avro-ddl/spi/avroschema"
	"github.com/samber/lo"
)

type SQLType string

const (
	BOOL   SQLType = "BOOL"
	INT    SQLType = "INT"
	BIGINT SQLType = "BIGINT"
	FLOAT4 SQLType = "FLOAT4"
	FLOAT8 SQLType = "FLOAT8"
	BYTEA  SQLType = "BYTEA"
	TEXT   SQLType = "TEXT"
)

var typeMapping = map[avroschema.PrimitiveType]SQLType{
	avroschema.BOOLEAN: BOOL,
	avroschema.INT:     INT,
	avroschema.LONG:    BIGINT,
	avroschema.FLOAT:   FLOAT4,
	avroschema.DOUBLE:  FLOAT8,
	avroschema.BYTES:   BYTEA,
	avroschema.STRING:  TEXT,
}

type UnrecognizedTypeError struct {
	Field string
	Type  avroschema.PrimitiveType
}

func (e *UnrecognizedTypeError) Error() string {
	return fmt.Sprintf(
		"field '%s' has unrecognized type '%s', supported types are: %s",
		e.Field, e.Type, strings.Join(SupportedTypes(), ", "),
	)
}

// SupportedTypes returns the sorted Avro type names with a column type mapping
func SupportedTypes() []string {
	types := lo.Map(lo.Keys(typeMapping), func(t avroschema.PrimitiveType, _ int) string {
		return string(t)
	})
	sort.Strings(types)
	return types
}

// ResolveType maps a field's type to the Greenplum column type and
// reports whether the column accepts NULLs.
func ResolveType(
	field avroschema.Field,
) (SQLType, bool, error) {

	sqlType, ok := typeMapping[field.Type.Primitive]
	if !ok {
		return "", false, errors.Wrap(&UnrecognizedTypeError{Field: field.Name, Type: field.Type.Primitive}, 0)
	}
	return sqlType, field.Type.IsNullable(), nil
}
