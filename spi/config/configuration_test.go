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

package config

import (
	"os"
	"reflect"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Env_Vars(t *testing.T) {
	os.Setenv("FOO_BAR", "foo")
	defer os.Unsetenv("FOO_BAR")

	os.Setenv("FOO_BAR__BAZ", "bar")
	defer os.Unsetenv("FOO_BAR__BAZ")

	// On Windows environment variables are case-insensitive, therefore,
	// this test will always fail if trying to use different casing versions
	if runtime.GOOS != "windows" {
		os.Setenv("foo_bar", "bar")
		defer os.Unsetenv("foo_bar")

		os.Setenv("foo_bar__baz", "foo")
		defer os.Unsetenv("foo_bar__baz")
	}

	v, found := findEnvProperty("foo.bar", "test")
	assert.Equal(t, true, found)
	assert.Equal(t, "foo", v)

	v, found = findEnvProperty("foo.bar_baz", "test")
	assert.Equal(t, true, found)
	assert.Equal(t, "bar", v)

	v, found = findEnvProperty("oof.bar", "test")
	assert.Equal(t, false, found)
	assert.Equal(t, "test", v)

	v, found = findEnvProperty("oof.bar_baz", "test")
	assert.Equal(t, false, found)
	assert.Equal(t, "test", v)
}

func Test_Env_Vars_Bool(t *testing.T) {
	t.Setenv("FOO_ENABLED", "yes")
	t.Setenv("FOO_BROKEN", "maybe")

	v, found := findEnvProperty("foo.enabled", false)
	assert.True(t, found)
	assert.True(t, v)

	v, found = findEnvProperty("foo.broken", true)
	assert.False(t, found)
	assert.True(t, v)
}

func Test_Property_Extraction(t *testing.T) {
	config := Config{
		Schema: SchemaConfig{
			Unions: UnionStrict,
		},
		Logging: LoggerConfig{
			Level: "debug",
		},
	}

	value := reflect.ValueOf(config)
	v1, found := findProperty(value, "schema")
	assert.Equal(t, true, found)

	v2, found := findProperty(v1, "unions")
	assert.Equal(t, true, found)
	assert.Equal(t, "strict", string(v2.Interface().(UnionPolicy)))

	v3, found := findProperty(value, "logging")
	assert.Equal(t, true, found)

	v4, found := findProperty(v3, "level")
	assert.Equal(t, true, found)
	assert.Equal(t, "debug", v4.Interface().(string))

	_, found = findProperty(value, "nonexistent")
	assert.Equal(t, false, found)
}

func Test_Config_Property_Reading(t *testing.T) {
	config := &Config{
		Schema: SchemaConfig{
			Unions:           UnionStrict,
			CustomReflection: addrOf(false),
		},
	}

	v1 := GetOrDefault(config, PropertySchemaUnions, UnionFirstBranch)
	assert.Equal(t, UnionStrict, v1)

	v2 := GetOrDefault(config, PropertySchemaCustomReflection, true)
	assert.Equal(t, false, v2)

	v3 := GetOrDefault(config, PropertyDDLQuoteIdentifiers, false)
	assert.Equal(t, false, v3)

	v4 := GetOrDefault(config, "schema.non.existent", true)
	assert.Equal(t, true, v4)

	t.Setenv("SCHEMA_UNIONS", "first")

	v5 := GetOrDefault(config, PropertySchemaUnions, UnionStrict)
	assert.Equal(t, UnionFirstBranch, v5)

	t.Setenv("DDL_QUOTEIDENTIFIERS", "true")

	v6 := GetOrDefault(config, PropertyDDLQuoteIdentifiers, false)
	assert.Equal(t, true, v6)
}

func Test_Resolve_Union_Policy(t *testing.T) {
	policy, err := ResolveUnionPolicy(&Config{})
	assert.NoError(t, err)
	assert.Equal(t, UnionFirstBranch, policy)

	policy, err = ResolveUnionPolicy(&Config{Schema: SchemaConfig{Unions: UnionStrict}})
	assert.NoError(t, err)
	assert.Equal(t, UnionStrict, policy)

	_, err = ResolveUnionPolicy(&Config{Schema: SchemaConfig{Unions: "strcit"}})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "'strcit'")
	}

	t.Setenv("SCHEMA_UNIONS", "loose")
	_, err = ResolveUnionPolicy(&Config{Schema: SchemaConfig{Unions: UnionStrict}})
	assert.Error(t, err)
}

func addrOf[T any](value T) *T {
	return &value
}
