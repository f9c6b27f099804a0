package config

import (
	"log"
	"os"
	"strconv"
)

func getInt32Env(key string, fallback int32) int32 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(i)
		}
		log.Printf("Invalid int32 for %s, using fallback", key)
	}
	return fallback
}

func getUint32Env(key string, fallback uint32) uint32 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseUint(value, 10, 32); err == nil {
			return uint32(i)
		}
		log.Printf("Invalid uint32 for %s, using fallback", key)
	}
	return fallback
}
