package cache

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	seenEvents   = make(map[string]time.Time)
	seenDuration = 10 * time.Minute
	mu           sync.Mutex
)

// Seen сообщает, рассылалось ли уже такое событие в пределах окна.
// Просроченные записи удаляются при обращении.
func Seen(key string) bool {
	mu.Lock()
	defer mu.Unlock()

	at, ok := seenEvents[key]
	if !ok {
		return false
	}

	if time.Since(at) > seenDuration {
		delete(seenEvents, key)
		return false
	}

	return true
}

// MarkSeen запоминает событие, чтобы его повтор не рассылался заново.
func MarkSeen(key string) {
	mu.Lock()
	defer mu.Unlock()

	seenEvents[key] = time.Now()
	logrus.Infof("Событие %s добавлено в кэш повторов", key)
}

// Flush полностью очищает кэш повторов. Нужен тестам.
func Flush() {
	mu.Lock()
	defer mu.Unlock()

	seenEvents = make(map[string]time.Time)
}
