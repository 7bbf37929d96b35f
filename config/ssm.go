package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ParameterSource is the slice of the SSM API the overlay needs.
type ParameterSource interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// OverlaySSM copies every parameter under SSM_PARAMETER_PREFIX into the
// config map. "/portfolio/prod/jwt_secret" becomes JWT_SECRET. Existing
// environment values win so local overrides keep working.
func OverlaySSM(ctx context.Context, cfg map[string]string) error {
	prefix := GetString(cfg, "SSM_PARAMETER_PREFIX", "")
	if prefix == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	return overlayFrom(ctx, ssm.NewFromConfig(awsCfg), prefix, cfg)
}

func overlayFrom(ctx context.Context, source ParameterSource, prefix string, cfg map[string]string) error {
	paginator := ssm.NewGetParametersByPathPaginator(source, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("read ssm parameters under %s: %w", prefix, err)
		}
		for _, p := range page.Parameters {
			key := parameterKey(aws.ToString(p.Name))
			if key == "" {
				continue
			}
			if existing, ok := cfg[key]; ok && existing != "" {
				continue
			}
			cfg[key] = aws.ToString(p.Value)
			loaded++
		}
	}

	log.Info().Str("prefix", prefix).Int("parameters", loaded).Msg("Loaded configuration from SSM")
	return nil
}

func parameterKey(name string) string {
	base := path.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	return strings.ToUpper(strings.ReplaceAll(base, "-", "_"))
}
