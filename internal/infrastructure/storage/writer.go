package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"ursa-server/internal/domain"
)

const (
	MagicHeader string = `URRP` // 4 байта
	Version1    uint32 = 1
)

// Формат .urrp (little endian):
//
//	ReplayFileHeader | имя уровня | ActionCount x (ActionHeader | payload) | CRC32
//
// CRC32 (IEEE) считается по всем байтам до него.

// ReplayFileHeader пишется одним binary.Write: в нем только числа и массивы.
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	Ticks       int32   // 4 байта
	ActionCount int32   // 4 байта
	NameLen     uint16  // 2 байта, за заголовком идет имя уровня
}

// ActionHeader - заголовок каждой записи действия.
type ActionHeader struct {
	Tick       int32  // 4
	ActionType uint8  // 1
	PayloadLen uint16 // 2
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) (*ReplayService, error) {
	// Создаем папку если нет
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет запись во временный файл и переименовывает его.
// Недописанный файл никогда не лежит под именем .urrp.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%s_%d_%d.urrp", session.LevelName, session.Seed, session.Timestamp)
	path := filepath.Join(s.SaveDir, filename)
	tmpPath := path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", err
	}

	w := bufio.NewWriter(f)
	err = writeBinary(w, session)
	if err == nil {
		err = w.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("write replay: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("replace replay: %w", err)
	}
	return path, nil
}

func writeBinary(out io.Writer, s *domain.ReplaySession) error {
	sum := crc32.NewIEEE()
	w := io.MultiWriter(out, sum)

	name := []byte(s.LevelName)
	if len(name) > 65535 {
		return fmt.Errorf("level name too long: %d", len(name))
	}

	// 1. Подготавливаем и пишем ГЛОБАЛЬНЫЙ ЗАГОЛОВОК
	header := ReplayFileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		Ticks:       int32(s.Ticks),
		ActionCount: int32(len(s.Actions)),
		NameLen:     uint16(len(name)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(name); err != nil {
		return err
	}

	// 2. Пишем действия
	for _, act := range s.Actions {
		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Tick:       int32(act.Tick),
			ActionType: uint8(act.Action),
			PayloadLen: uint16(payloadLen),
		}

		// Пишем заголовок действия одной командой
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}

		// Пишем тело
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	// 3. Контрольная сумма (сама в сумму не входит)
	return binary.Write(out, binary.LittleEndian, sum.Sum32())
}
