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
	"strings"

	"github.com/go-errors/errors"
	"github.com/jackc/pgx/v5"
	"github.com/pivotal-dil/avro-ddl/spi/avroschema"
	"github.com/pivotal-dil/avro-ddl/spi/config"
	"github.com/samber/lo"
)

const (
	columnSeparator = "   "
	clauseIndent    = "  "
)

type Column struct {
	Name     string
	SQLType  SQLType
	Nullable bool
}

func BuildColumnClause(
	column Column,
) string {

	clause := column.Name + columnSeparator + string(column.SQLType)
	if !column.Nullable {
		clause += columnSeparator + "NOT NULL"
	}
	return clause
}

type Translator struct {
	quoteIdentifiers bool
}

func NewTranslatorWithConfig(
	c *config.Config,
) *Translator {

	return NewTranslator(config.GetOrDefault(c, config.PropertyDDLQuoteIdentifiers, false))
}

func NewTranslator(
	quoteIdentifiers bool,
) *Translator {

	return &Translator{
		quoteIdentifiers: quoteIdentifiers,
	}
}

// Columns resolves all fields in declaration order. The first
// unrecognized type aborts the resolution.
func (t *Translator) Columns(
	document *avroschema.Document,
) ([]Column, error) {

	columns := make([]Column, 0, len(document.Fields))
	for _, field := range document.Fields {
		sqlType, nullable, err := ResolveType(field)
		if err != nil {
			return nil, err
		}
		columns = append(columns, Column{
			Name:     t.identifier(field.Name),
			SQLType:  sqlType,
			Nullable: nullable,
		})
	}
	return columns, nil
}

// Translate renders the CREATE TABLE statement for the document. The
// table is distributed by its first column.
func (t *Translator) Translate(
	document *avroschema.Document,
) (string, error) {

	columns, err := t.Columns(document)
	if err != nil {
		return "", err
	}

	// Without a first field there is no distribution key
	if len(columns) == 0 {
		return "", errors.Wrap(&avroschema.MissingFieldError{Path: "fields[0]"}, 0)
	}
	distributionKey := columns[0].Name

	clauses := lo.Map(columns, func(column Column, _ int) string {
		return BuildColumnClause(column)
	})

	builder := strings.Builder{}
	builder.WriteString("CREATE TABLE ")
	builder.WriteString(t.tableName(document.Namespace))
	builder.WriteString("\n(\n")
	builder.WriteString(clauseIndent)
	builder.WriteString(strings.Join(clauses, ",\n"+clauseIndent))
	builder.WriteString("\n)\n")
	builder.WriteString("DISTRIBUTED BY (")
	builder.WriteString(distributionKey)
	builder.WriteString(");")
	return builder.String(), nil
}

func (t *Translator) identifier(
	name string,
) string {

	if !t.quoteIdentifiers {
		return name
	}
	return pgx.Identifier{name}.Sanitize()
}

// tableName quotes every dot separated part of the namespace on its own,
// "a.b" becomes "a"."b".
func (t *Translator) tableName(
	namespace string,
) string {

	if !t.quoteIdentifiers {
		return namespace
	}
	return pgx.Identifier(strings.Split(namespace, ".")).Sanitize()
}
