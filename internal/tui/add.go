package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/robby/deckctl/internal/api"
	"github.com/robby/deckctl/internal/session"
)

// inputDateFormat is the due-date format accepted by the add flow.
const inputDateFormat = "2006-01-02 1504"

// addStep enumerates the screens of the add-card flow.
type addStep int

const (
	stepTitle addStep = iota
	stepDescription
	stepBoardLoading
	stepBoard
	stepStackLoading
	stepStack
	stepDueDate
	stepUsersLoading
	stepUsers
	stepSubmitting
	stepDone
)

// AddModel walks the user through creating a card: title, description,
// board, stack, due date, assignees. Board and stack lists go through
// the session cache so revisiting a step does not refetch.
type AddModel struct {
	ctx     context.Context
	client  *api.Client
	session *session.Session

	step addStep
	err  error

	titleInput textinput.Model
	descInput  textinput.Model
	dueInput   textinput.Model

	boardList list.Model
	stackList list.Model
	userList  list.Model

	boards   []api.Board
	stacks   []api.Stack
	userIDs  []string
	selected map[int]bool

	board *api.Board
	stack *api.Stack
	card  *api.Card

	title       string
	description string
	dueDate     time.Time
}

// NewAddModel creates the add-card flow model.
func NewAddModel(ctx context.Context, client *api.Client) AddModel {
	title := textinput.New()
	title.Placeholder = "Card title"
	title.CharLimit = 255
	title.Focus()

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD HHMM (optional)"

	return AddModel{
		ctx:        ctx,
		client:     client,
		session:    session.New(client),
		step:       stepTitle,
		titleInput: title,
		descInput:  desc,
		dueInput:   due,
		selected:   make(map[int]bool),
	}
}

// Card returns the created card, or nil if the flow was aborted.
func (m AddModel) Card() *api.Card { return m.card }

// Err returns the failure that ended the flow, if any.
func (m AddModel) Err() error { return m.err }

func (m AddModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case errorMsg:
		m.err = msg.err
		return m, tea.Quit
	case boardsLoadedMsg:
		m.boards = msg.boards
		titles := make([]string, len(m.boards))
		for i, b := range m.boards {
			titles[i] = b.Title
		}
		m.boardList = newPicker("Select a Board", titles)
		m.step = stepBoard
		return m, nil
	case stacksLoadedMsg:
		m.stacks = msg.stacks
		titles := make([]string, len(m.stacks))
		for i, s := range m.stacks {
			titles[i] = s.Title
		}
		m.stackList = newPicker("Select a Stack", titles)
		m.step = stepStack
		return m, nil
	case usersLoadedMsg:
		m.userIDs = msg.userIDs
		m.userList = newPicker("Assign Users (space toggles, enter confirms)", msg.userIDs)
		m.step = stepUsers
		return m, nil
	case cardCreatedMsg:
		m.card = msg.card
		m.step = stepDone
		return m, tea.Quit
	}

	switch m.step {
	case stepTitle:
		return m.updateTitle(msg)
	case stepDescription:
		return m.updateDescription(msg)
	case stepBoard:
		return m.updateBoard(msg)
	case stepStack:
		return m.updateStack(msg)
	case stepDueDate:
		return m.updateDueDate(msg)
	case stepUsers:
		return m.updateUsers(msg)
	}
	return m, nil
}

func (m AddModel) updateTitle(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if m.titleInput.Value() == "" {
			m.err = fmt.Errorf("title is not allowed to be empty")
			return m, nil
		}
		m.err = nil
		m.title = m.titleInput.Value()
		m.step = stepDescription
		m.descInput.Focus()
		return m, nil
	}
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m AddModel) updateDescription(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		m.description = m.descInput.Value()
		m.step = stepBoardLoading
		return m, m.loadBoards()
	}
	var cmd tea.Cmd
	m.descInput, cmd = m.descInput.Update(msg)
	return m, cmd
}

func (m AddModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && m.boardList.FilterState() != list.Filtering {
		if item, ok := m.boardList.SelectedItem().(pickerItem); ok {
			for i := range m.boards {
				if m.boards[i].Title == string(item) {
					m.board = &m.boards[i]
					break
				}
			}
			m.step = stepStackLoading
			return m, m.loadStacks(m.board.ID)
		}
	}
	var cmd tea.Cmd
	m.boardList, cmd = m.boardList.Update(msg)
	return m, cmd
}

func (m AddModel) updateStack(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && m.stackList.FilterState() != list.Filtering {
		if item, ok := m.stackList.SelectedItem().(pickerItem); ok {
			for i := range m.stacks {
				if m.stacks[i].Title == string(item) {
					m.stack = &m.stacks[i]
					break
				}
			}
			m.step = stepDueDate
			m.dueInput.Focus()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.stackList, cmd = m.stackList.Update(msg)
	return m, cmd
}

func (m AddModel) updateDueDate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := m.dueInput.Value()
		if value != "" {
			parsed, err := time.ParseInLocation(inputDateFormat, value, time.Local)
			if err != nil {
				m.err = fmt.Errorf("date format has to be YYYY-MM-DD HHMM")
				return m, nil
			}
			m.dueDate = parsed
		}
		m.err = nil
		m.step = stepUsersLoading
		return m, m.loadUsers()
	}
	var cmd tea.Cmd
	m.dueInput, cmd = m.dueInput.Update(msg)
	return m, cmd
}

func (m AddModel) updateUsers(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.userList.FilterState() != list.Filtering {
		switch key.String() {
		case " ":
			m.selected[m.userList.Index()] = !m.selected[m.userList.Index()]
			return m, nil
		case "enter":
			m.step = stepSubmitting
			return m, m.submit()
		}
	}
	var cmd tea.Cmd
	m.userList, cmd = m.userList.Update(msg)
	return m, cmd
}

func (m AddModel) loadBoards() tea.Cmd {
	return func() tea.Msg {
		boards, err := m.session.Boards(m.ctx)
		if err != nil {
			return errorMsg{err: err}
		}
		return boardsLoadedMsg{boards: boards}
	}
}

func (m AddModel) loadStacks(boardID int) tea.Cmd {
	return func() tea.Msg {
		stacks, err := m.session.Stacks(m.ctx, boardID)
		if err != nil {
			return errorMsg{err: err}
		}
		return stacksLoadedMsg{stacks: stacks}
	}
}

func (m AddModel) loadUsers() tea.Cmd {
	return func() tea.Msg {
		ids, err := m.client.UserIDs(m.ctx)
		if err != nil {
			return errorMsg{err: err}
		}
		return usersLoadedMsg{userIDs: ids}
	}
}

func (m AddModel) submit() tea.Cmd {
	request := api.CardRequest{
		Title:       m.title,
		Description: m.description,
	}
	if !m.dueDate.IsZero() {
		request.DueDate = api.DueDate{Time: m.dueDate}
	}
	var uids []string
	for i, picked := range m.selected {
		if picked && i < len(m.userIDs) {
			uids = append(uids, m.userIDs[i])
		}
	}
	boardID, stackID := m.board.ID, m.stack.ID
	return func() tea.Msg {
		card, err := m.client.CreateCard(m.ctx, boardID, stackID, request)
		if err != nil {
			return errorMsg{err: err}
		}
		for _, uid := range uids {
			if err := m.client.AssignUser(m.ctx, boardID, stackID, card.ID, uid); err != nil {
				return errorMsg{err: err}
			}
		}
		return cardCreatedMsg{card: card}
	}
}

func (m AddModel) View() string {
	var body string
	switch m.step {
	case stepTitle:
		body = TitleStyle.Render("Card Title") + "\n" + m.titleInput.View()
	case stepDescription:
		body = TitleStyle.Render("Description") + "\n" + m.descInput.View()
	case stepBoardLoading:
		body = "Fetching Boards from server..."
	case stepBoard:
		body = m.boardList.View()
	case stepStackLoading:
		body = "Fetching Stacks from server..."
	case stepStack:
		body = m.stackList.View()
	case stepDueDate:
		body = TitleStyle.Render("Due Date") + "\n" + m.dueInput.View()
	case stepUsersLoading:
		body = "Fetching Users from server..."
	case stepUsers:
		body = m.userListView()
	case stepSubmitting:
		body = "Creating card..."
	case stepDone:
		body = "Card created."
	}
	if m.err != nil {
		body += "\n" + ErrorStyle.Render(m.err.Error())
	}
	return body + "\n" + HelpStyle.Render("enter confirm | ctrl+c abort")
}

// userListView decorates the picker with toggle markers.
func (m AddModel) userListView() string {
	view := m.userList.View()
	var picked []string
	for i, on := range m.selected {
		if on && i < len(m.userIDs) {
			picked = append(picked, m.userIDs[i])
		}
	}
	if len(picked) > 0 {
		view += "\n" + NormalItemStyle.Render(fmt.Sprintf("selected: %v", picked))
	}
	return view
}
