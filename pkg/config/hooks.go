package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/devantler-tech/tgops/pkg/utils/envvar"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"sigs.k8s.io/yaml"
)

// expandEnvDecodeHook resolves ${NAME} placeholders in every string value so a
// config file can reference secrets kept in the environment.
func expandEnvDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, _ reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		raw, _ := data.(string)
		if !envvar.HasPlaceholder(raw) {
			return data, nil
		}

		return envvar.Expand(raw), nil
	}
}

// userIDsDecodeHook decodes a comma separated string into []int64.
func userIDsDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeFor[[]int64]() {
			return data, nil
		}

		raw, _ := data.(string)

		var ids []int64

		for field := range strings.SplitSeq(raw, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}

			id, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidUserID, field)
			}

			ids = append(ids, id)
		}

		return ids, nil
	}
}

// appLogsDecodeHook decodes a JSON or YAML document string into map[string]string.
func appLogsDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeFor[map[string]string]() {
			return data, nil
		}

		raw, _ := data.(string)
		if strings.TrimSpace(raw) == "" {
			return map[string]string{}, nil
		}

		var links map[string]string

		err := yaml.Unmarshal([]byte(raw), &links)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAppLogs, err)
		}

		return links, nil
	}
}
