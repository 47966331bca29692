package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"ursa-server/internal/domain"
)

// Load читает запись из файла. Каталог сервиса не важен, путь берется как есть.
func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	return LoadFile(path)
}

func LoadFile(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

func readBinary(in io.Reader) (*domain.ReplaySession, error) {
	sum := crc32.NewIEEE()
	r := io.TeeReader(in, sum)

	// 1. Читаем заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.ActionCount < 0 || header.Ticks < 0 {
		return nil, fmt.Errorf("corrupted header: %d actions, %d ticks", header.ActionCount, header.Ticks)
	}

	name := make([]byte, header.NameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("failed to read level name: %w", err)
	}

	session := &domain.ReplaySession{
		LevelName: string(name),
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Ticks:     int(header.Ticks),
		Actions:   make([]domain.ReplayAction, header.ActionCount),
	}

	// 2. Читаем Actions
	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		act := domain.ReplayAction{
			Tick:   int(ah.Tick),
			Action: domain.ActionType(ah.ActionType),
		}

		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("action %d payload: %w", i, err)
			}
		} else {
			act.Payload = json.RawMessage{}
		}

		session.Actions[i] = act
	}

	// 3. Сверяем контрольную сумму
	var stored uint32
	if err := binary.Read(in, binary.LittleEndian, &stored); err != nil {
		return nil, fmt.Errorf("failed to read checksum: %w", err)
	}
	if stored != sum.Sum32() {
		return nil, fmt.Errorf("checksum mismatch: file %08x, computed %08x", stored, sum.Sum32())
	}

	return session, nil
}
