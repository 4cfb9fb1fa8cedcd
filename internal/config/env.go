package config

import (
	"github.com/frenchcert/frenchcert/pkg/client"
	"github.com/frenchcert/frenchcert/pkg/listview"
	"github.com/frenchcert/frenchcert/pkg/logging"
	"github.com/frenchcert/frenchcert/pkg/metrics"
	"github.com/frenchcert/frenchcert/pkg/middleware"
	"github.com/frenchcert/frenchcert/pkg/pagination"
)

var loggingEnv = &logging.Env{
	Level:  "LOGGING_LEVEL",
	Format: "LOGGING_FORMAT",
	File:   "LOGGING_FILE",
	Source: "LOGGING_SOURCE",
}

var apiEnv = &client.ConfigEnv{
	BaseURL:         "API_BASE_URL",
	Token:           "API_TOKEN",
	Timeout:         "API_TIMEOUT",
	MaxResponseSize: "API_MAX_RESPONSE_SIZE",
}

var corsEnv = &middleware.CORSEnv{
	Enabled:          "CORS_ENABLED",
	Origins:          "CORS_ORIGINS",
	AllowedMethods:   "CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CORS_ALLOWED_HEADERS",
	AllowCredentials: "CORS_ALLOW_CREDENTIALS",
	MaxAge:           "CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "PAGINATION_MAX_PAGE_SIZE",
}

var listEnv = &listview.ConfigEnv{
	Debounce: "LIST_DEBOUNCE",
}

var metricsEnv = &metrics.ConfigEnv{
	Enabled:   "METRICS_ENABLED",
	Path:      "METRICS_PATH",
	Namespace: "METRICS_NAMESPACE",
}
