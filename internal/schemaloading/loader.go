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

package schemaloading

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-errors/errors"
	"github.com/gookit/goutil/fsutil"
	"github.com/klauspost/compress/gzip"
	"github.com/pivotal-dil/avro-ddl/internal/supporting/logging"
	"github.com/pivotal-dil/avro-ddl/spi/avroschema"
)

var (
	ErrSchemaFileNotFound   = fmt.Errorf("schema file not found")
	ErrSchemaFileUnreadable = fmt.Errorf("schema file couldn't be read")
)

type Loader struct {
	decoder *avroschema.Decoder
	logger  *logging.Logger
}

func NewLoader(
	decoder *avroschema.Decoder,
) (*Loader, error) {

	logger, err := logging.NewLogger("SchemaLoader")
	if err != nil {
		return nil, err
	}

	return &Loader{
		decoder: decoder,
		logger:  logger,
	}, nil
}

// Load reads the schema file at path, files ending in .gz are
// decompressed on the fly.
func (l *Loader) Load(
	path string,
) (*avroschema.Document, error) {

	if !fsutil.IsFile(path) {
		return nil, errors.WrapPrefix(ErrSchemaFileNotFound, path, 0)
	}

	content, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	l.logger.Debugf("Read %d bytes from schema file %s", len(content), path)

	document, err := l.decoder.Decode(content)
	if err != nil {
		return nil, err
	}

	l.logger.Verbosef("Namespace: %s, N columns: %d", document.Namespace, len(document.Fields))
	return document, nil
}

func (l *Loader) readFile(
	path string,
) ([]byte, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, unreadable(err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gzipReader, err := gzip.NewReader(f)
		if err != nil {
			return nil, unreadable(fmt.Errorf("schema file isn't gzip compressed: %w", err))
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, unreadable(err)
	}
	return content, nil
}

func unreadable(
	cause error,
) error {

	return errors.Wrap(fmt.Errorf("%w: %w", ErrSchemaFileUnreadable, cause), 1)
}
