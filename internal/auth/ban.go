package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	maxLoginStrikes  = 5
	strikeWindow     = 15 * time.Minute
	loginBanDuration = 15 * time.Minute

	dailyBanLogKey = "auth:banlog:daily"
)

var (
	alertFrom        = os.Getenv("ALERT_FROM")
	alertTo          = os.Getenv("ALERT_TO")
	smtpServer       = os.Getenv("SMTP_SERVER")
	smtpPort         = os.Getenv("SMTP_PORT")
	smtpUser         = os.Getenv("SMTP_USER")
	smtpPassword     = os.Getenv("SMTP_PASS")
	smtpAuthDisabled = os.Getenv("SMTP_AUTH_DISABLED")
)

// BanStore tracks failed login attempts per username in redis. After
// maxLoginStrikes failures within the strike window the account is
// temporarily banned from logging in.
type BanStore struct {
	rdb *redis.Client
}

func NewBanStore(rdb *redis.Client) *BanStore {
	return &BanStore{rdb: rdb}
}

func strikesKey(username string) string { return "auth:strikes:" + username }
func banKey(username string) string     { return "auth:ban:" + username }

// Strike records a failed login. Returns true when the strike triggered a ban.
func (b *BanStore) Strike(ctx context.Context, username string) (bool, error) {
	strikes, err := b.rdb.Incr(ctx, strikesKey(username)).Result()
	if err != nil {
		return false, err
	}
	if strikes == 1 {
		b.rdb.Expire(ctx, strikesKey(username), strikeWindow)
	}
	if strikes < maxLoginStrikes {
		return false, nil
	}

	if err := b.rdb.Set(ctx, banKey(username), 1, loginBanDuration).Err(); err != nil {
		return false, err
	}
	b.logBanEvent(ctx, username, int(strikes))
	sendBanAlertEmail(username, int(strikes))
	return true, nil
}

// Banned reports whether the username is currently banned from logging in.
func (b *BanStore) Banned(ctx context.Context, username string) (bool, error) {
	n, err := b.rdb.Exists(ctx, banKey(username)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ClearStrikes resets the failure counter after a successful login.
func (b *BanStore) ClearStrikes(ctx context.Context, username string) {
	_ = b.rdb.Del(ctx, strikesKey(username)).Err()
}

type banLogEntry struct {
	Username string    `json:"username"`
	Strikes  int       `json:"strikes"`
	Time     time.Time `json:"time"`
}

func (b *BanStore) logBanEvent(ctx context.Context, username string, strikes int) {
	entry := banLogEntry{Username: username, Strikes: strikes, Time: time.Now().UTC()}
	data, _ := json.Marshal(entry)
	_ = b.rdb.RPush(ctx, dailyBanLogKey, data).Err()
}

// StartDailyBanSummary logs and drains the ban event log on each interval.
func (b *BanStore) StartDailyBanSummary(ctx context.Context, interval time.Duration) {
	for {
		time.Sleep(interval)
		entries, err := b.rdb.LRange(ctx, dailyBanLogKey, 0, -1).Result()
		if err != nil {
			log.Printf("Failed to read ban log: %v", err)
			continue
		}
		if len(entries) == 0 {
			continue
		}
		log.Printf("Login ban summary: %d ban(s) in the last period", len(entries))
		_ = b.rdb.Del(ctx, dailyBanLogKey).Err()
	}
}

func sendBanAlertEmail(username string, strikes int) {
	if smtpServer == "" || alertTo == "" {
		return
	}

	subject := fmt.Sprintf("BAN ALERT: login blocked for %s", username)
	body := fmt.Sprintf("Username: %s\nStrikes: %d\nTime: %s", username, strikes, time.Now().Format(time.RFC3339))
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", alertFrom, alertTo, subject, body)

	addr := fmt.Sprintf("%s:%s", smtpServer, smtpPort)
	auth := smtp.PlainAuth("", smtpUser, smtpPassword, smtpServer)
	if smtpAuthDisabled != "" {
		auth = nil
	}

	go func() {
		if err := smtp.SendMail(addr, auth, alertFrom, []string{alertTo}, []byte(msg)); err != nil {
			log.Printf("Failed to send alert email: %v", err)
		}
	}()
}
