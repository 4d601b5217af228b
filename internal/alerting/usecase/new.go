package usecase

import (
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/repository"
	pkgLog "github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
	pkgRedis "github.com/UMwai/um-biotech-catalyst-radar/pkg/redis"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/sendgrid"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/slack"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/twilio"
)

type usecase struct {
	l     pkgLog.Logger
	repo  repository.Repository
	redis pkgRedis.IRedis
	email sendgrid.ISendGrid
	sms   twilio.ITwilio
	slack slack.ISlack
	clock func() time.Time
}

// New builds the alerting usecase. redis may be nil (the gate falls back
// to the store); email, sms and slack may be nil when the channel is not
// configured, in which case dispatch skips it.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	redis pkgRedis.IRedis,
	email sendgrid.ISendGrid,
	sms twilio.ITwilio,
	slackSender slack.ISlack,
) alerting.UseCase {
	return &usecase{
		l:     l,
		repo:  repo,
		redis: redis,
		email: email,
		sms:   sms,
		slack: slackSender,
		clock: time.Now,
	}
}
