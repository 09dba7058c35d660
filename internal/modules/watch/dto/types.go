package dto

import "time"

type Options struct {
	Interval    time.Duration
	TopicPrefix string
	Ceiling     float64
}

type StatsOutput struct {
	Published   int       `json:"published" yaml:"published"`
	Failed      int       `json:"failed" yaml:"failed"`
	LastPublish time.Time `json:"last_publish" yaml:"last_publish"`
}
