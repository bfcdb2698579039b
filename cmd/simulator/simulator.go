package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// SimulatorConfig holds the voice client configuration.
type SimulatorConfig struct {
	ServerURL   string
	Token       string
	ScriptPath  string
	Interactive bool
}

// demoScript exercises the main command families end to end.
var demoScript = []string{
	"abrir mapa",
	"quiero ver mis cursos",
	"agregar curso biología marina",
	"activar contraste",
	"cambiar tamaño de letra",
	"leer pantalla",
	"cerrar sesión",
}

// Simulator plays the part of the browser on the voice stream: it
// pushes transcripts as if speech recognition produced them and prints
// every frame the server sends back.
type Simulator struct {
	config *SimulatorConfig
	conn   *websocket.Conn
	log    *zap.Logger

	mu       sync.Mutex
	spoken   chan struct{} // signals a speak frame arrived for the last utterance
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewSimulator(config *SimulatorConfig, log *zap.Logger) *Simulator {
	return &Simulator{
		config:   config,
		log:      log,
		spoken:   make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
}

// Connect dials the voice stream. The token travels as a query
// parameter because browsers cannot set websocket headers either.
func (s *Simulator) Connect() error {
	url := s.config.ServerURL + "?token=" + s.config.Token

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", s.config.ServerURL, err)
	}
	s.conn = conn
	s.log.Info("Connected to voice stream", zap.String("url", s.config.ServerURL))

	s.wg.Add(1)
	go s.readLoop()
	return nil
}

func (s *Simulator) Run() error {
	if s.config.Interactive {
		return s.runInteractive()
	}

	utterances := demoScript
	if s.config.ScriptPath != "" {
		loaded, err := loadScript(s.config.ScriptPath)
		if err != nil {
			return err
		}
		utterances = loaded
	}

	for _, utterance := range utterances {
		select {
		case <-s.stopChan:
			return nil
		default:
		}
		if err := s.say(utterance); err != nil {
			return err
		}
	}

	// Give the last response a moment to arrive before closing.
	time.Sleep(time.Second)
	s.Stop()
	s.wg.Wait()
	return nil
}

func (s *Simulator) runInteractive() error {
	fmt.Println("Type an utterance and press enter (empty line quits):")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		if err := s.say(line); err != nil {
			return err
		}
	}
	s.Stop()
	s.wg.Wait()
	return scanner.Err()
}

// say runs one full session: activate, deliver the transcript, wait
// for the spoken response.
func (s *Simulator) say(utterance string) error {
	fmt.Printf("\n>> %s\n", utterance)

	if err := s.send(map[string]string{"type": "start"}); err != nil {
		return err
	}
	// Simulated recognition delay.
	time.Sleep(200 * time.Millisecond)

	if err := s.send(map[string]string{"type": "transcript", "text": utterance}); err != nil {
		return err
	}

	select {
	case <-s.spoken:
	case <-time.After(5 * time.Second):
		s.log.Warn("No spoken response", zap.String("utterance", utterance))
	case <-s.stopChan:
	}
	return nil
}

func (s *Simulator) send(frame map[string]string) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *Simulator) readLoop() {
	defer s.wg.Done()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.stopChan:
			default:
				s.log.Error("Read failed", zap.Error(err))
			}
			return
		}

		var frame struct {
			Type   string `json:"type"`
			Text   string `json:"text"`
			Route  string `json:"route"`
			Field  string `json:"field"`
			Value  string `json:"value"`
			Status string `json:"status"`
		}
		if err := json.Unmarshal(data, &frame); err != nil {
			s.log.Warn("Unparseable frame", zap.ByteString("data", data))
			continue
		}

		switch frame.Type {
		case "speak":
			fmt.Printf("   habla: %q\n", frame.Text)
			select {
			case s.spoken <- struct{}{}:
			default:
			}
		case "cancel_speech":
			fmt.Println("   habla interrumpida")
		case "navigate":
			fmt.Printf("   navega a %s\n", frame.Route)
		case "fill_field":
			fmt.Printf("   campo %s = %q\n", frame.Field, frame.Value)
		case "state":
			if s.log.Core().Enabled(zap.DebugLevel) {
				fmt.Printf("   estado: %s\n", frame.Status)
			}
		}
	}
}

func (s *Simulator) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		if s.conn != nil {
			s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			s.conn.Close()
		}
	})
}

func loadScript(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	var utterances []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		utterances = append(utterances, line)
	}
	return utterances, scanner.Err()
}
