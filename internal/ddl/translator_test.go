package ddl

import (
	"testing"

	"github.com/pivotal-dil/avro-ddl/spi/avroschema"
	"github.com/pivotal-dil/avro-ddl/spi/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventsDocument() *avroschema.Document {
	return &avroschema.Document{
		Namespace: "events",
		Fields: []avroschema.Field{
			{Name: "id", Type: avroschema.Primitive(avroschema.LONG)},
			{Name: "note", Type: avroschema.Nullable(avroschema.STRING)},
		},
	}
}

func Test_Translate_Events(t *testing.T) {
	statement, err := NewTranslator(false).Translate(eventsDocument())
	require.NoError(t, err)

	expected := "CREATE TABLE events\n" +
		"(\n" +
		"  id   BIGINT   NOT NULL,\n" +
		"  note   TEXT\n" +
		")\n" +
		"DISTRIBUTED BY (id);"
	assert.Equal(t, expected, statement)
}

func Test_Translate_Single_Field(t *testing.T) {
	document := &avroschema.Document{
		Namespace: "public.metrics",
		Fields: []avroschema.Field{
			{Name: "value", Type: avroschema.Nullable(avroschema.DOUBLE)},
		},
	}

	statement, err := NewTranslator(false).Translate(document)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE public.metrics\n(\n  value   FLOAT8\n)\nDISTRIBUTED BY (value);", statement)
}

func Test_Translate_Quoted_Identifiers(t *testing.T) {
	document := eventsDocument()
	document.Namespace = "public.events"

	statement, err := NewTranslator(true).Translate(document)
	require.NoError(t, err)

	expected := "CREATE TABLE \"public\".\"events\"\n" +
		"(\n" +
		"  \"id\"   BIGINT   NOT NULL,\n" +
		"  \"note\"   TEXT\n" +
		")\n" +
		"DISTRIBUTED BY (\"id\");"
	assert.Equal(t, expected, statement)
}

func Test_Translator_With_Config(t *testing.T) {
	quote := true
	c := &config.Config{
		DDL: config.DDLConfig{
			QuoteIdentifiers: &quote,
		},
	}

	statement, err := NewTranslatorWithConfig(c).Translate(eventsDocument())
	require.NoError(t, err)
	assert.Contains(t, statement, "DISTRIBUTED BY (\"id\");")

	statement, err = NewTranslatorWithConfig(&config.Config{}).Translate(eventsDocument())
	require.NoError(t, err)
	assert.Contains(t, statement, "DISTRIBUTED BY (id);")
}

func Test_Translate_Unrecognized_Type(t *testing.T) {
	document := eventsDocument()
	document.Fields = append(document.Fields, avroschema.Field{
		Name: "trace", Type: avroschema.Primitive("uuid"),
	})

	statement, err := NewTranslator(false).Translate(document)
	assert.Empty(t, statement)

	var typeError *UnrecognizedTypeError
	require.ErrorAs(t, err, &typeError)
	assert.Equal(t, "trace", typeError.Field)
	assert.Equal(t, avroschema.PrimitiveType("uuid"), typeError.Type)
	assert.Contains(t, err.Error(), "boolean, bytes, double, float, int, long, string")
}

func Test_Translate_No_Fields(t *testing.T) {
	statement, err := NewTranslator(false).Translate(&avroschema.Document{Namespace: "empty"})
	assert.Empty(t, statement)

	var missingFieldError *avroschema.MissingFieldError
	require.ErrorAs(t, err, &missingFieldError)
	assert.Equal(t, "fields[0]", missingFieldError.Path)
}

func Test_Resolve_Type(t *testing.T) {
	cases := []struct {
		primitive avroschema.PrimitiveType
		sqlType   SQLType
	}{
		{avroschema.BOOLEAN, BOOL},
		{avroschema.INT, INT},
		{avroschema.LONG, BIGINT},
		{avroschema.FLOAT, FLOAT4},
		{avroschema.DOUBLE, FLOAT8},
		{avroschema.BYTES, BYTEA},
		{avroschema.STRING, TEXT},
	}

	for _, c := range cases {
		sqlType, nullable, err := ResolveType(avroschema.Field{Name: "f", Type: avroschema.Primitive(c.primitive)})
		require.NoError(t, err)
		assert.Equal(t, c.sqlType, sqlType)
		assert.False(t, nullable)

		sqlType, nullable, err = ResolveType(avroschema.Field{Name: "f", Type: avroschema.Nullable(c.primitive)})
		require.NoError(t, err)
		assert.Equal(t, c.sqlType, sqlType)
		assert.True(t, nullable)
	}

	_, _, err := ResolveType(avroschema.Field{Name: "f", Type: avroschema.Nullable(avroschema.NULL)})
	var typeError *UnrecognizedTypeError
	assert.ErrorAs(t, err, &typeError)
}

func Test_Build_Column_Clause(t *testing.T) {
	assert.Equal(t, "id   BIGINT   NOT NULL", BuildColumnClause(Column{Name: "id", SQLType: BIGINT}))
	assert.Equal(t, "note   TEXT", BuildColumnClause(Column{Name: "note", SQLType: TEXT, Nullable: true}))
}

func Test_Supported_Types(t *testing.T) {
	assert.Equal(t, []string{"boolean", "bytes", "double", "float", "int", "long", "string"}, SupportedTypes())
}
