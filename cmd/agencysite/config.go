package main

import (
	"github.com/dmitrymomot/agencysite/pkg/config"
	"github.com/dmitrymomot/agencysite/pkg/email"
	"github.com/dmitrymomot/agencysite/pkg/emailjs"
	"github.com/dmitrymomot/agencysite/pkg/httpserver"
	"github.com/dmitrymomot/agencysite/pkg/logger"
	"github.com/dmitrymomot/agencysite/pkg/redis"
	"github.com/dmitrymomot/agencysite/svc/contact"
)

type appConfig struct {
	Logger  logger.Config
	HTTP    httpserver.Config
	Redis   redis.Config
	Email   email.Config
	EmailJS emailjs.Config
	Contact contact.Config
}

func loadConfig() (appConfig, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return appConfig{}, err
	}
	return cfg, nil
}
