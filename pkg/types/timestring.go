package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// Количество минут в сутках. Значение "24:00" допустимо только как верхняя
// граница интервала (конец окна доступности или конец слота).
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidFormat возвращается при некорректном формате времени
	ErrInvalidFormat = errors.New("types: invalid time string format, expected HH:MM")

	// ErrOutOfRange возвращается, когда результат арифметики выходит за пределы суток
	ErrOutOfRange = errors.New("types: time is out of day range")
)

// TimeString время в формате "HH:MM" (24-часовой формат, без даты).
// Используется для времени начала/конца слотов и окон доступности.
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString создает TimeString из строки с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток.
// Значение MinutesPerDay представляется как "24:00".
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m > MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrOutOfRange, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate проверяет формат "HH:MM". Допустимы значения от "00:00" до "23:59",
// а также "24:00" как граница конца суток.
func (t TimeString) Validate() error {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	var hh, mm int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hh, &mm); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	if hh == 24 && mm == 0 {
		return nil
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут с начала суток.
// Для некорректного значения возвращает 0 - перед арифметикой нужно вызывать Validate.
func (t TimeString) Minutes() int {
	var hh, mm int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hh, &mm); err != nil {
		return 0
	}
	return hh*60 + mm
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД.
// Колонки TIME PostgreSQL приходят как "HH:MM:SS" - секунды отбрасываются.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case nil:
		*t = ""
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) > 5 {
		s = s[:5]
	}
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return err
	}
	*t = ts
	return nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// AddMinutes возвращает время, сдвинутое вперёд на m минут.
// Возвращает ошибку, если результат выходит за пределы суток.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	return NewTimeStringFromMinutes(t.Minutes() + m)
}

// SubMinutesClamped возвращает время, сдвинутое назад на m минут,
// с отсечением по началу суток ("00:00")
func (t TimeString) SubMinutesClamped(m int) TimeString {
	total := t.Minutes() - m
	if total < 0 {
		total = 0
	}
	ts, _ := NewTimeStringFromMinutes(total)
	return ts
}

// AddMinutesClamped возвращает время, сдвинутое вперёд на m минут,
// с отсечением по концу суток ("24:00")
func (t TimeString) AddMinutesClamped(m int) TimeString {
	total := t.Minutes() + m
	if total > MinutesPerDay {
		total = MinutesPerDay
	}
	ts, _ := NewTimeStringFromMinutes(total)
	return ts
}
