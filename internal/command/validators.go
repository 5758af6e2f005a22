// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/defunctgo/internal/backend"
	"github.com/staranto/defunctgo/pkg/decorators"
)

// GlobalFlagsValidator checks flag combinations that no single flag
// validator can see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.String("store") == string(backend.S3) && c.String("bucket") == "" {
		return errors.New("--store s3 requires --bucket")
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func MustBeTrueValidator(value any) error {
	if !value.(bool) {
		return errors.New("must be true")
	}
	return nil
}

// OneOfValidator accepts only the listed values.
func OneOfValidator(valid ...string) FlagValidatorType {
	return func(value any) error {
		for _, v := range valid {
			if v == value {
				return nil
			}
		}
		return fmt.Errorf("must be one of %v", valid)
	}
}

func StoreValidator(value any) error {
	_, err := backend.ParseType(value.(string))
	return err
}

func TimeUseValidator(value any) error {
	_, err := decorators.ParseUses(value.(string))
	return err
}
