package config

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// LoadSSMParameters fetches every parameter below parameterPath and exports
// it as an environment variable named after the last path segment.
// Variables already present in the environment are left untouched.
// It returns the names that were exported.
func LoadSSMParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, parameterPath string) ([]string, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	var exported []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return exported, fmt.Errorf("load ssm parameters from %s: %w", parameterPath, err)
		}

		for _, p := range page.Parameters {
			name := path.Base(aws.ToString(p.Name))
			if name == "" || name == "/" || name == "." {
				continue
			}
			if _, set := os.LookupEnv(name); set {
				log.Debug().Str("name", name).Msg("ssm parameter shadowed by environment")
				continue
			}
			if err := os.Setenv(name, aws.ToString(p.Value)); err != nil {
				return exported, fmt.Errorf("export ssm parameter %s: %w", name, err)
			}
			exported = append(exported, name)
		}
	}
	return exported, nil
}
