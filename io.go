package main

import (
	"encoding/json"
	"fmt"
	"os"
)

var (
	configFile string = getEnv("CONFIG_FILE", "config.json")
)

func readConfig() (*Config, error) {
	// Get app configuration
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("error reading config file:%s", err)
	}

	// Parse JSON data
	var config Config
	err = json.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("error parsing JSON:%s", err)
	}

	return &config, nil
}

func readRules(fileName string) (*RulesCatalog, error) {
	// Get payer rules document
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file:%s", err)
	}

	// Parse JSON data
	var rules RulesCatalog
	err = json.Unmarshal(data, &rules)
	if err != nil {
		return nil, fmt.Errorf("error parsing JSON:%s", err)
	}

	return &rules, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
