// Package notify publishes employee notifications onto the mail queue
// consumed by cmd/mail. Delivery to the employee's inbox is asynchronous;
// callers only learn whether the message reached the broker.
package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/balebbae/RESA-sub002/internal/domain"
	"github.com/balebbae/RESA-sub002/internal/scheduling"
)

const MailQueueName = "email_queue"

type QueuePublisher struct {
	channel        *amqp.Channel
	publishTimeout time.Duration
}

func NewQueuePublisher(channel *amqp.Channel, publishTimeout time.Duration) *QueuePublisher {
	return &QueuePublisher{
		channel:        channel,
		publishTimeout: publishTimeout,
	}
}

// NotifyEmployeeOfSchedule enqueues a schedule_published mail summarizing the
// employee's shifts for the schedule's week.
func (p *QueuePublisher) NotifyEmployeeOfSchedule(ctx context.Context, employee *domain.Employee, restaurant *domain.Restaurant, schedule *domain.Schedule, shifts []*domain.ScheduledShift) error {
	data := domain.SchedulePublishedMailData{
		EmployeeName:   employee.FullName,
		RestaurantName: restaurant.Name,
		WeekStart:      schedule.StartDate.Format(scheduling.DateLayout),
		WeekEnd:        schedule.EndDate.Format(scheduling.DateLayout),
		Shifts:         make([]domain.SchedulePublishedMailShift, 0, len(shifts)),
	}
	for _, shift := range shifts {
		data.Shifts = append(data.Shifts, domain.SchedulePublishedMailShift{
			Date:      shift.ShiftDate.Format(scheduling.DateLayout),
			StartTime: shift.StartTime,
			EndTime:   shift.EndTime,
			RoleName:  shift.RoleName,
		})
	}

	body, err := json.Marshal(domain.MailMessage{
		Type: "schedule_published",
		To:   employee.Email,
		Data: data,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()

	return p.channel.PublishWithContext(
		ctx,
		"",
		MailQueueName,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
