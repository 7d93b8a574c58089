package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"mentorly/config"
	"mentorly/models"
	"mentorly/services/notification"
)

// InitNotificationWorker runs the async worker in background. It consumes
// the invite-delivery and scheduled-reminder queues.
func InitNotificationWorker(notifSvc notification.NotificationService, mailer notification.Mailer) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TaskTypeInviteDeliver, handleInviteTask(mailer))
	mux.HandleFunc(notification.TaskTypeReminderSend, handleReminderTask(notifSvc))

	go monitorRedisConnection()

	go func() {
		log.Println("[NotificationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleInviteTask(mailer notification.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.InvitePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[InviteHandler] invalid payload: %v", err)
			return err
		}

		if err := mailer.SendICS(p.Email, p.Subject, p.ICS, p.Cancelled); err != nil {
			log.Printf("[InviteHandler] failed to deliver invite to %s: %v", p.Email, err)
			return err
		}
		return nil
	}
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] firing reminder for %s %s: %s", p.Target, p.UserID, p.Title)

		data := map[string]string{
			"type":      "session_reminder",
			"bookingId": p.BookingID,
			"fireDate":  p.FireDate,
		}
		if err := notifSvc.PushBookingUpdate(ctx, p.UserID, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] failed to send notification: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[NotificationWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
