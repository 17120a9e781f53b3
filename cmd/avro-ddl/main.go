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

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pivotal-dil/avro-ddl/internal/ddl"
	"github.com/pivotal-dil/avro-ddl/internal/schemaloading"
	"github.com/pivotal-dil/avro-ddl/internal/supporting"
	"github.com/pivotal-dil/avro-ddl/internal/supporting/logging"
	"github.com/pivotal-dil/avro-ddl/internal/version"
	"github.com/pivotal-dil/avro-ddl/spi/avroschema"
	spiconfig "github.com/pivotal-dil/avro-ddl/spi/config"
	"github.com/urfave/cli"
)

const configEnvironmentVariable = "AVRO_DDL_CONFIG"

var osExit = os.Exit

func init() {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(c.App.Writer, "%s version %s (git revision %s; branch %s)\n",
			version.BinName, version.Version, version.CommitHash, version.Branch,
		)
	}
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(
	stdout, stderr io.Writer,
) *cli.App {

	app := cli.NewApp()
	app.Name = version.BinName
	app.Usage = "Creates a Greenplum CREATE TABLE statement from an Avro schema"
	app.ArgsUsage = "avro_schema_file"
	app.Version = version.Version
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: "Load configuration from `FILE`",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Show verbose output",
		},
		cli.BoolFlag{
			Name:  "caller",
			Usage: "Collect caller information for log messages",
		},
	}
	app.Action = func(c *cli.Context) error {
		return start(c, stdout, stderr)
	}
	app.ExitErrHandler = func(_ *cli.Context, err error) {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintln(stderr, msg)
			}
			osExit(exitErr.ExitCode())
		}
	}
	return app
}

func start(
	c *cli.Context, stdout, stderr io.Writer,
) error {

	if c.NArg() != 1 {
		fmt.Fprintf(stdout, "Usage: %s avro_schema_file\n", c.App.Name)
		return cli.NewExitError("", supporting.ExitCodeUsage)
	}
	schemaFile := c.Args().First()

	logging.WithCaller = c.Bool("caller")
	logging.WithVerbose = c.Bool("verbose")

	config, source, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}

	if err := logging.InitializeLogging(config, stderr); err != nil {
		return supporting.AdaptError(err, supporting.ExitCodeUnexpectedFailure)
	}

	logger, err := logging.NewLogger("AvroDDL")
	if err != nil {
		return supporting.AdaptError(err, supporting.ExitCodeUnexpectedFailure)
	}
	defer func() {
		if err := logging.FlushLogging(); err != nil {
			logger.Errorf("Log output couldn't be flushed: %s", err.Error())
		}
	}()

	if source != "" {
		logger.Infof("Loaded configuration file: %s", source)
	}

	decoder, err := avroschema.NewDecoderWithConfig(config)
	if err != nil {
		return supporting.AdaptErrorWithMessage(err, "Configuration is invalid", supporting.ExitCodeConfigDecode)
	}

	loader, err := schemaloading.NewLoader(decoder)
	if err != nil {
		return supporting.AdaptError(err, supporting.ExitCodeUnexpectedFailure)
	}

	document, err := loader.Load(schemaFile)
	if err != nil {
		return supporting.AdaptErrorWithMessage(err, "Schema couldn't be loaded", supporting.ExitCode(err))
	}

	statement, err := ddl.NewTranslatorWithConfig(config).Translate(document)
	if err != nil {
		return supporting.AdaptErrorWithMessage(err, "DDL couldn't be created", supporting.ExitCode(err))
	}

	fmt.Fprint(stdout, statement+"\n\n")
	return nil
}

// loadConfig returns the configuration and the file it was read from,
// logging isn't initialized yet, so the source is reported by the caller.
func loadConfig(
	configurationFile string,
) (*spiconfig.Config, string, error) {

	config := &spiconfig.Config{}

	// No configuration file set? Try env variable!
	if configurationFile == "" {
		if cf, present := os.LookupEnv(configEnvironmentVariable); present {
			configurationFile = cf
		}
	}

	if configurationFile == "" {
		return config, "", nil
	}

	f, err := os.Open(configurationFile)
	if err != nil {
		return nil, "", cli.NewExitError(
			fmt.Sprintf("Configuration file couldn't be opened: %v", err), supporting.ExitCodeConfigOpen,
		)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, "", cli.NewExitError(
			fmt.Sprintf("Configuration file couldn't be read: %v", err), supporting.ExitCodeConfigRead,
		)
	}

	if err := spiconfig.Unmarshall(b, config, spiconfig.IsTomlFile(configurationFile)); err != nil {
		return nil, "", cli.NewExitError(
			fmt.Sprintf("Configuration file couldn't be decoded: %v", err), supporting.ExitCodeConfigDecode,
		)
	}
	return config, configurationFile, nil
}
