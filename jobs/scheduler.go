package jobs

import (
	"time"

	"qrmenu/pkg/metrics"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Expirer คือสิ่งที่ cron เรียกเพื่อปิด subscription ที่หมดอายุ
type Expirer interface {
	ExpireDue() (int64, error)
}

// Cleaner ล้าง state ที่ไม่ได้ใช้ (เช่น rate limiter ต่อ IP)
type Cleaner interface {
	Cleanup(idle time.Duration)
}

type Scheduler struct {
	cron *cron.Cron
	log  logrus.FieldLogger
}

func NewScheduler(log logrus.FieldLogger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cronLogger{log}))),
		log:  log,
	}
}

// AddExpiry ลงทะเบียน job ตาม schedule เช่น "@every 1h" หรือ "0 * * * *"
func (s *Scheduler) AddExpiry(schedule string, e Expirer) error {
	_, err := s.cron.AddFunc(schedule, func() { RunExpiry(e, s.log) })
	return err
}

func (s *Scheduler) AddCleanup(schedule string, idle time.Duration, c Cleaner) error {
	_, err := s.cron.AddFunc(schedule, func() { c.Cleanup(idle) })
	return err
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop รอ job ที่กำลังทำงานอยู่ให้จบ
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunExpiry รันหนึ่งรอบ (แยกออกมาเพื่อเรียกตอน start และใน test)
func RunExpiry(e Expirer, log logrus.FieldLogger) int64 {
	n, err := e.ExpireDue()
	if err != nil {
		log.WithError(err).Error("❌ expire subscriptions failed")
		return 0
	}
	metrics.RecordExpired(int(n))
	if n > 0 {
		log.WithField("count", n).Info("⏰ subscriptions expired")
	}
	return n
}

// cronLogger ต่อ cron.Logger เข้ากับ logrus
type cronLogger struct {
	log logrus.FieldLogger
}

func (l cronLogger) Info(msg string, kv ...interface{}) {
	l.log.WithFields(kvFields(kv)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, kv ...interface{}) {
	l.log.WithError(err).WithFields(kvFields(kv)).Error(msg)
}

func kvFields(kv []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			f[k] = kv[i+1]
		}
	}
	return f
}
