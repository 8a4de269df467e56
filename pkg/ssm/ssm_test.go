package ssm

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clientFunc func(ctx context.Context, in *ssm.GetParametersInput) (*ssm.GetParametersOutput, error)

func (f clientFunc) GetParameters(ctx context.Context, in *ssm.GetParametersInput, _ ...func(*ssm.Options)) (*ssm.GetParametersOutput, error) {
	return f(ctx, in)
}

func TestFetchParameters(t *testing.T) {
	var got *ssm.GetParametersInput
	client := clientFunc(func(_ context.Context, in *ssm.GetParametersInput) (*ssm.GetParametersOutput, error) {
		got = in
		return &ssm.GetParametersOutput{
			Parameters: []types.Parameter{
				{Name: aws.String("/app/prod/token"), Value: aws.String("secret")},
				{Name: aws.String("/app/prod/channel"), Value: aws.String("C123")},
				{Name: aws.String("/app/prod/unrequested"), Value: aws.String("x")},
				{Name: nil, Value: aws.String("x")},
			},
		}, nil
	})

	var token, channel string
	err := FetchParameters(context.Background(), client, map[string]*string{
		"token":   &token,
		"channel": &channel,
	}, WithPrefix("/app/prod/"), WithDecryption())
	require.NoError(t, err)

	assert.Equal(t, "secret", token)
	assert.Equal(t, "C123", channel)
	assert.Equal(t, []string{"/app/prod/channel", "/app/prod/token"}, got.Names)
	assert.True(t, aws.ToBool(got.WithDecryption))
}

func TestFetchParameters_NotFound(t *testing.T) {
	client := clientFunc(func(_ context.Context, in *ssm.GetParametersInput) (*ssm.GetParametersOutput, error) {
		return &ssm.GetParametersOutput{InvalidParameters: in.Names}, nil
	})

	var token string
	err := FetchParameters(context.Background(), client, map[string]*string{"token": &token})

	require.ErrorIs(t, err, ErrParamsNotFound)
	assert.Contains(t, err.Error(), "token")
}

func TestFetchParameters_ClientError(t *testing.T) {
	apiErr := errors.New("access denied")
	client := clientFunc(func(context.Context, *ssm.GetParametersInput) (*ssm.GetParametersOutput, error) {
		return nil, apiErr
	})

	var token string
	err := FetchParameters(context.Background(), client, map[string]*string{"token": &token})

	require.ErrorIs(t, err, apiErr)
}

func TestFetchParameters_Empty(t *testing.T) {
	client := clientFunc(func(context.Context, *ssm.GetParametersInput) (*ssm.GetParametersOutput, error) {
		t.Fatal("client must not be called")
		return nil, nil
	})

	assert.NoError(t, FetchParameters(context.Background(), client, nil))
}
