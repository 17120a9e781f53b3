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

import "fmt"

// ParseError is returned when the schema isn't syntactically valid JSON
// or an entry has the wrong JSON type.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("schema couldn't be parsed: %s", e.Err.Error())
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingFieldError names the path of a required entry which is absent
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("schema is missing required entry '%s'", e.Path)
}

type UnsupportedUnionError struct {
	Field    string
	Branches int
}

func (e *UnsupportedUnionError) Error() string {
	return fmt.Sprintf(
		"field '%s' declares a union of %d branches, only [<type>, null] is supported", e.Field, e.Branches,
	)
}
