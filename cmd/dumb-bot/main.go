// dumb-bot is a throwaway client that sits at a table and plays random
// legal actions over the HTTP API. Useful for smoke-testing a server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"cardroom/internal/config"
)

type tableView struct {
	Table struct {
		Stage      string `json:"stage"`
		CurrentBet int64  `json:"current_bet"`
		MinBet     int64  `json:"min_bet"`
		Turn       int    `json:"turn"`
		Finished   bool   `json:"finished"`
		Seats      []struct {
			PlayerID string `json:"player_id"`
			Index    int    `json:"index"`
			RoundBet int64  `json:"round_bet"`
		} `json:"seats"`
	} `json:"table"`
}

func main() {
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.PlayerID == "" {
		cfg.PlayerID = "bot-" + strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	tableID := cfg.TableID
	if tableID == "" {
		tableID, err = createTable(client, cfg.ServerURL)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("created table %s", tableID)
	}
	if err := join(client, cfg.ServerURL, tableID, cfg.PlayerID); err != nil {
		log.Fatal(err)
	}
	log.Printf("joined table %s as %s", tableID, cfg.PlayerID)

	played := 0
	inHand := false
	for played < cfg.Hands {
		view, err := state(client, cfg.ServerURL, tableID, cfg.PlayerID)
		if err != nil {
			log.Printf("state: %v", err)
			time.Sleep(time.Second)
			continue
		}
		if view.Table.Finished {
			if inHand {
				played++
				inHand = false
				log.Printf("hand %d/%d done", played, cfg.Hands)
			}
			time.Sleep(time.Second)
			continue
		}
		if view.Table.Stage == "waiting" {
			time.Sleep(time.Second)
			continue
		}
		inHand = true

		mySeat := -1
		var myRoundBet int64
		for _, s := range view.Table.Seats {
			if s.PlayerID == cfg.PlayerID {
				mySeat = s.Index
				myRoundBet = s.RoundBet
			}
		}
		if mySeat < 0 || view.Table.Turn != mySeat {
			time.Sleep(500 * time.Millisecond)
			continue
		}

		action, amount := decide(rnd, view.Table.CurrentBet, view.Table.MinBet, myRoundBet)
		if err := act(client, cfg.ServerURL, tableID, cfg.PlayerID, action, amount); err != nil {
			log.Printf("%s rejected: %v", action, err)
			// Raise refused, usually short stack. Folding is always legal.
			_ = act(client, cfg.ServerURL, tableID, cfg.PlayerID, "fold", 0)
		}
	}
}

func decide(rnd *rand.Rand, currentBet, minBet, myRoundBet int64) (string, int64) {
	if myRoundBet == currentBet {
		// check or open
		if rnd.Intn(2) == 0 {
			return "check", 0
		}
		return "bet", currentBet + minBet
	}
	switch rnd.Intn(3) {
	case 0:
		return "fold", 0
	case 1:
		return "bet", currentBet // call
	default:
		return "bet", currentBet + minBet
	}
}

func createTable(client *http.Client, base string) (string, error) {
	resp, err := client.Post(base+"/api/tables", "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var out struct {
		TableID string `json:"table_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.TableID, nil
}

func join(client *http.Client, base, tableID, playerID string) error {
	body, _ := json.Marshal(map[string]string{"player_id": playerID})
	resp, err := client.Post(base+"/api/tables/"+tableID+"/join", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("join: status %d", resp.StatusCode)
	}
	return nil
}

func state(client *http.Client, base, tableID, playerID string) (*tableView, error) {
	resp, err := client.Get(base + "/api/tables/" + tableID + "/state?player_id=" + playerID)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("state: status %d", resp.StatusCode)
	}
	var view tableView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, err
	}
	return &view, nil
}

func act(client *http.Client, base, tableID, playerID, action string, amount int64) error {
	body, _ := json.Marshal(map[string]any{
		"player_id": playerID,
		"action":    action,
		"amount":    amount,
	})
	resp, err := client.Post(base+"/api/tables/"+tableID+"/actions", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("status %d: %s", resp.StatusCode, e.Error)
	}
	return nil
}
