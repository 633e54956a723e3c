package usecasees

import (
	"sync"
	"testing"
	"time"

	"settler/models"

	"github.com/stretchr/testify/assert"
)

type reminderTestEnv struct {
	*orderTestEnv
	settings *memSettingsRepo
	reminder *reminderUseCase
}

func initReminderTest() *reminderTestEnv {
	orderEnv := initOrderTest(map[string]float64{QuoteAsset: 0})
	settings := &memSettingsRepo{}

	reminder := NewReminderUseCase(
		orderEnv.orders,
		settings,
		orderEnv.sink,
		time.Second,
		30*time.Second,
		nil,
		testLogger(),
	)

	return &reminderTestEnv{
		orderTestEnv: orderEnv,
		settings:     settings,
		reminder:     reminder,
	}
}

func Test_Remind(t *testing.T) {
	t.Run("order inside the window gets one reminder", func(t *testing.T) {
		env := initReminderTest()
		assert.NoError(t, env.settings.SetMode(true))

		order := env.storePending(1000, 40, time.Now().Add(20*time.Second))

		env.reminder.remind(time.Now())

		assert.Equal(t, 1, env.sink.count(models.AdminTarget))

		stored, err := env.orders.GetByID(order.ID)
		assert.NoError(t, err)
		assert.True(t, stored.Reminded)
	})

	t.Run("repeat ticks never repeat the reminder", func(t *testing.T) {
		env := initReminderTest()
		assert.NoError(t, env.settings.SetMode(true))

		env.storePending(1000, 40, time.Now().Add(20*time.Second))

		env.reminder.remind(time.Now())
		env.reminder.remind(time.Now())
		env.reminder.remind(time.Now())

		assert.Equal(t, 1, env.sink.count(models.AdminTarget))
	})

	t.Run("auto mode sends nothing", func(t *testing.T) {
		env := initReminderTest()

		env.storePending(1000, 40, time.Now().Add(20*time.Second))

		env.reminder.remind(time.Now())

		assert.Equal(t, 0, env.sink.count(models.AdminTarget))
	})

	t.Run("far from expiry sends nothing", func(t *testing.T) {
		env := initReminderTest()
		assert.NoError(t, env.settings.SetMode(true))

		env.storePending(1000, 40, time.Now().Add(time.Hour))

		env.reminder.remind(time.Now())

		assert.Equal(t, 0, env.sink.count(models.AdminTarget))
	})

	t.Run("already expired sends nothing", func(t *testing.T) {
		env := initReminderTest()
		assert.NoError(t, env.settings.SetMode(true))

		env.storePending(1000, 40, time.Now().Add(-time.Second))

		env.reminder.remind(time.Now())

		assert.Equal(t, 0, env.sink.count(models.AdminTarget))
	})
}

func Test_Remind_Concurrent(t *testing.T) {
	env := initReminderTest()
	assert.NoError(t, env.settings.SetMode(true))

	env.storePending(1000, 40, time.Now().Add(20*time.Second))

	now := time.Now()

	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			env.reminder.remind(now)
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, env.sink.count(models.AdminTarget))
}
