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

package supporting

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/pivotal-dil/avro-ddl/internal/ddl"
	"github.com/pivotal-dil/avro-ddl/internal/schemaloading"
	"github.com/pivotal-dil/avro-ddl/spi/avroschema"
	"github.com/urfave/cli"
)

const (
	ExitCodeUsage             = 1
	ExitCodeConfigOpen        = 3
	ExitCodeConfigRead        = 4
	ExitCodeConfigDecode      = 5
	ExitCodeSchemaFile        = 10
	ExitCodeParse             = 11
	ExitCodeMissingField      = 12
	ExitCodeUnrecognizedType  = 13
	ExitCodeUnsupportedUnion  = 14
	ExitCodeUnexpectedFailure = 20
)

// ExitCode maps an error to the process exit code of its kind
func ExitCode(err error) int {
	var parseError *avroschema.ParseError
	var missingFieldError *avroschema.MissingFieldError
	var unionError *avroschema.UnsupportedUnionError
	var typeError *ddl.UnrecognizedTypeError

	switch {
	case errors.As(err, &parseError):
		return ExitCodeParse
	case errors.As(err, &missingFieldError):
		return ExitCodeMissingField
	case errors.As(err, &unionError):
		return ExitCodeUnsupportedUnion
	case errors.As(err, &typeError):
		return ExitCodeUnrecognizedType
	case errors.Is(err, schemaloading.ErrSchemaFileNotFound),
		errors.Is(err, schemaloading.ErrSchemaFileUnreadable):
		return ExitCodeSchemaFile
	}
	return ExitCodeUnexpectedFailure
}

func AdaptError(err error, exitCode int) *cli.ExitError {
	if err == nil {
		return nil
	}
	if e, ok := err.(*cli.ExitError); ok {
		return e
	}
	return cli.NewExitError(err.Error(), exitCode)
}

func AdaptErrorWithMessage(err error, msg string, exitCode int) *cli.ExitError {
	if err == nil {
		return nil
	}
	if e, ok := err.(*cli.ExitError); ok {
		return e
	}
	return cli.NewExitError(fmt.Sprintf("%s => err: %s", msg, err.Error()), exitCode)
}
