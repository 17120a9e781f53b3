package supporting

import (
	"fmt"
	"testing"

	"github.com/go-errors/errors"
	"github.com/pivotal-dil/avro-ddl/internal/ddl"
	"github.com/pivotal-dil/avro-ddl/internal/schemaloading"
	"github.com/pivotal-dil/avro-ddl/spi/avroschema"
	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli"
)

func Test_Exit_Codes(t *testing.T) {
	cases := []struct {
		err      error
		exitCode int
	}{
		{errors.Wrap(&avroschema.ParseError{Err: fmt.Errorf("boom")}, 0), ExitCodeParse},
		{errors.Wrap(&avroschema.MissingFieldError{Path: "fields"}, 0), ExitCodeMissingField},
		{errors.Wrap(&avroschema.UnsupportedUnionError{Field: "u", Branches: 3}, 0), ExitCodeUnsupportedUnion},
		{errors.Wrap(&ddl.UnrecognizedTypeError{Field: "f", Type: "uuid"}, 0), ExitCodeUnrecognizedType},
		{errors.WrapPrefix(schemaloading.ErrSchemaFileNotFound, "/tmp/x.avsc", 0), ExitCodeSchemaFile},
		{errors.Wrap(fmt.Errorf("%w: %w", schemaloading.ErrSchemaFileUnreadable, fmt.Errorf("gzip: invalid header")), 0), ExitCodeSchemaFile},
		{fmt.Errorf("something else"), ExitCodeUnexpectedFailure},
	}

	for _, c := range cases {
		assert.Equal(t, c.exitCode, ExitCode(c.err), c.err.Error())
	}
}

func Test_Adapt_Error(t *testing.T) {
	assert.Nil(t, AdaptError(nil, 1))

	exitError := AdaptError(fmt.Errorf("failed"), 13)
	assert.Equal(t, 13, exitError.ExitCode())
	assert.Equal(t, "failed", exitError.Error())

	original := cli.NewExitError("original", 3)
	assert.Same(t, original, AdaptError(original, 13))

	exitError = AdaptErrorWithMessage(fmt.Errorf("failed"), "Config broken", 5)
	assert.Equal(t, "Config broken => err: failed", exitError.Error())
	assert.Equal(t, 5, exitError.ExitCode())
}
