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
	"strings"

	"github.com/go-errors/errors"
)

type UnionPolicy string

const (
	// UnionFirstBranch uses the first branch of a union and ignores the rest
	UnionFirstBranch UnionPolicy = "first"
	// UnionStrict rejects unions with more than two branches
	UnionStrict UnionPolicy = "strict"
)

func (p UnionPolicy) Valid() bool {
	return p == UnionFirstBranch || p == UnionStrict
}

// ResolveUnionPolicy reads schema.unions (environment first) and rejects
// anything but the known policies.
func ResolveUnionPolicy(
	config *Config,
) (UnionPolicy, error) {

	policy := GetOrDefault(config, PropertySchemaUnions, UnionFirstBranch)
	if !policy.Valid() {
		return "", errors.Errorf(
			"invalid value '%s' for %s, expected '%s' or '%s'",
			policy, PropertySchemaUnions, UnionFirstBranch, UnionStrict,
		)
	}
	return policy, nil
}

type Config struct {
	Logging LoggerConfig `toml:"logging" yaml:"logging"`
	Schema  SchemaConfig `toml:"schema" yaml:"schema"`
	DDL     DDLConfig    `toml:"ddl" yaml:"ddl"`
}

type SchemaConfig struct {
	Unions           UnionPolicy `toml:"unions" yaml:"unions"`
	CustomReflection *bool       `toml:"customreflection" yaml:"customreflection"`
}

type DDLConfig struct {
	QuoteIdentifiers *bool `toml:"quoteidentifiers" yaml:"quoteidentifiers"`
}

type LoggerConfig struct {
	Level   string                     `toml:"level" yaml:"level"`
	Outputs LoggerOutputConfig         `toml:"output" yaml:"output"`
	Loggers map[string]SubLoggerConfig `toml:"loggers" yaml:"loggers"`
}

type LoggerOutputConfig struct {
	Console LoggerConsoleConfig `toml:"console" yaml:"console"`
	File    LoggerFileConfig    `toml:"file" yaml:"file"`
}

type SubLoggerConfig struct {
	Level   *string            `toml:"level" yaml:"level"`
	Outputs LoggerOutputConfig `toml:"output" yaml:"output"`
}

type LoggerConsoleConfig struct {
	Enabled *bool `toml:"enabled" yaml:"enabled"`
}

type LoggerFileConfig struct {
	Enabled     *bool   `toml:"enabled" yaml:"enabled"`
	Path        string  `toml:"path" yaml:"path"`
	Rotate      *bool   `toml:"rotate" yaml:"rotate"`
	MaxSize     *string `toml:"maxsize" yaml:"maxsize"`
	MaxDuration *int    `toml:"maxduration" yaml:"maxduration"`
	Compress    bool    `toml:"compress" yaml:"compress"`
}

// GetOrDefault resolves a dotted property path against the configuration.
// An environment variable named after the path (dots become underscores,
// underscores are doubled) takes precedence over the configured value.
func GetOrDefault[V any](
	config *Config, canonicalProperty string, defaultValue V,
) V {

	if env, found := findEnvProperty(canonicalProperty, defaultValue); found {
		return env
	}

	properties := strings.Split(canonicalProperty, ".")

	element := reflect.ValueOf(*config)
	for _, property := range properties {
		if e, ok := findProperty(element, property); ok {
			element = e
		} else {
			return defaultValue
		}
	}

	if !element.IsZero() &&
		!(element.Kind() == reflect.Ptr && element.IsNil()) {

		if element.Kind() == reflect.Ptr {
			element = element.Elem()
		}

		return element.Convert(reflect.TypeOf(defaultValue)).Interface().(V)
	}
	return defaultValue
}

func findEnvProperty[V any](
	canonicalProperty string, defaultValue V,
) (V, bool) {

	t := reflect.TypeOf(defaultValue)

	envVarName := strings.ToUpper(canonicalProperty)
	envVarName = strings.ReplaceAll(envVarName, "_", "__")
	envVarName = strings.ReplaceAll(envVarName, ".", "_")
	if val, ok := os.LookupEnv(envVarName); ok {
		cv, ok := convertEnvValue(val, t)
		if !ok {
			return defaultValue, false
		}
		if !cv.IsZero() &&
			!(cv.Kind() == reflect.Ptr && cv.IsNil()) {
			return cv.Interface().(V), true
		}
	}
	return defaultValue, false
}

func convertEnvValue(
	val string, t reflect.Type,
) (reflect.Value, bool) {

	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(val).Convert(t), true
	case reflect.Bool:
		switch strings.ToLower(val) {
		case "1", "true", "yes", "on":
			return reflect.ValueOf(true).Convert(t), true
		case "0", "false", "no", "off":
			// false is the zero value, so it can't win over a configured value
			return reflect.ValueOf(false).Convert(t), true
		}
	}
	return reflect.Value{}, false
}

func findProperty(
	element reflect.Value, property string,
) (reflect.Value, bool) {

	t := element.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue
		}

		if f.Tag.Get("toml") == property {
			return element.Field(i), true
		}
	}
	return reflect.Value{}, false
}
