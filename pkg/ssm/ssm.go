// Package ssm fetches secrets from AWS Systems Manager Parameter Store into plain strings.
//
//	var token, channel string
//	err := ssm.FetchParameters(ctx, client, map[string]*string{
//		"slack-bot-token":  &token,
//		"slack-channel-id": &channel,
//	}, ssm.WithPrefix("/weekly-slack-reminder/prod/"), ssm.WithDecryption())
package ssm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ErrParamsNotFound is returned when one or more requested parameters
// do not exist in Parameter Store.
var ErrParamsNotFound = errors.New("params not found")

// Client is the subset of *ssm.Client used by FetchParameters.
type Client interface {
	GetParameters(ctx context.Context, params *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
}

type fetchOptions struct {
	withDecryption bool
	prefix         string
}

type OptionsF func(*fetchOptions)

// WithDecryption decrypts SecureString parameters.
func WithDecryption() OptionsF {
	return func(o *fetchOptions) {
		o.withDecryption = true
	}
}

// WithPrefix prepends prefix to every requested name. Keys of the params map stay unprefixed.
func WithPrefix(prefix string) OptionsF {
	return func(o *fetchOptions) {
		o.prefix = prefix
	}
}

// FetchParameters retrieves all params in a single GetParameters call and writes each value
// to its destination pointer. Missing parameters yield ErrParamsNotFound listing their names.
func FetchParameters(ctx context.Context, client Client, params map[string]*string, opts ...OptionsF) error {
	if len(params) == 0 {
		return nil
	}

	options := &fetchOptions{}
	for _, o := range opts {
		o(options)
	}

	names := make([]string, 0, len(params))
	byName := make(map[string]*string, len(params))
	for key, dest := range params {
		name := options.prefix + key
		names = append(names, name)
		byName[name] = dest
	}
	sort.Strings(names)

	result, err := client.GetParameters(ctx, &ssm.GetParametersInput{
		Names:          names,
		WithDecryption: aws.Bool(options.withDecryption),
	})
	if err != nil {
		return fmt.Errorf("ssm get parameters: %w", err)
	}

	if len(result.InvalidParameters) > 0 {
		return fmt.Errorf("%w: %s", ErrParamsNotFound, strings.Join(result.InvalidParameters, ", "))
	}

	for _, param := range result.Parameters {
		if param.Name == nil || param.Value == nil {
			continue
		}
		if dest, ok := byName[*param.Name]; ok {
			*dest = *param.Value
		}
	}

	return nil
}
