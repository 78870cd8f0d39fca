package hid

import (
	"strconv"

	"github.com/Alia5/remapper/device/keyboard"
	"github.com/Alia5/remapper/jsonvalue"
	"github.com/Alia5/remapper/parseerror"
)

// Rule document keys naming a momentary switch.
const (
	KeyCode                    = "key_code"
	ConsumerKeyCode            = "consumer_key_code"
	AppleVendorKeyboardKeyCode = "apple_vendor_keyboard_key_code"
	AppleVendorTopCaseKeyCode  = "apple_vendor_top_case_key_code"
	PointingButton             = "pointing_button"
)

type entry struct {
	name  string
	usage Usage
}

type table struct {
	key    string
	page   UsagePage
	byName map[string]Usage
	// names holds the first name listed for each usage.
	names map[Usage]string
	// other resolves names that live on a different usage page.
	other map[string]MomentarySwitchEvent
}

func newTable(key string, page UsagePage, entries []entry) *table {
	t := &table{
		key:    key,
		page:   page,
		byName: make(map[string]Usage, len(entries)),
		names:  make(map[Usage]string, len(entries)),
	}
	for _, e := range entries {
		t.byName[e.name] = e.usage
		if _, ok := t.names[e.usage]; !ok {
			t.names[e.usage] = e.name
		}
	}
	return t
}

var tables = map[string]*table{}

func tableFor(page UsagePage) *table {
	for _, t := range tables {
		if t.page == page {
			return t
		}
	}
	return nil
}

// IsKey reports whether key is one of the rule document keys naming a
// momentary switch.
func IsKey(key string) bool {
	_, ok := tables[key]
	return ok
}

// PageOf returns the usage page a rule document key names usages on.
func PageOf(key string) (UsagePage, bool) {
	t, ok := tables[key]
	if !ok {
		return PageUndefined, false
	}
	return t.page, true
}

// Resolve reads the value of one of the momentary switch keys. The value is
// a usage name or a non-negative usage number.
func Resolve(key string, v jsonvalue.Value) (MomentarySwitchEvent, error) {
	t, ok := tables[key]
	if !ok {
		return MomentarySwitchEvent{}, parseerror.UnknownKey(key, v)
	}

	if name, ok := v.AsString(); ok {
		if e, ok := t.other[name]; ok {
			return e, nil
		}
		if u, ok := t.byName[name]; ok {
			return MomentarySwitchEvent{UsagePage: t.page, Usage: u}, nil
		}
		return MomentarySwitchEvent{}, parseerror.UnknownValue(key, v)
	}

	if n, ok := v.AsInt(); ok && n >= 0 && n <= 0xFFFF {
		return MomentarySwitchEvent{UsagePage: t.page, Usage: Usage(n)}, nil
	}

	return MomentarySwitchEvent{}, parseerror.InvalidForm(key, "string or number", v)
}

// Lookup resolves a bare name the way Resolve does.
func Lookup(key, name string) (MomentarySwitchEvent, bool) {
	t, ok := tables[key]
	if !ok {
		return MomentarySwitchEvent{}, false
	}
	if e, ok := t.other[name]; ok {
		return e, true
	}
	u, ok := t.byName[name]
	return MomentarySwitchEvent{UsagePage: t.page, Usage: u}, ok
}

const (
	appleKeyboardFunction  Usage = 0x03
	appleTopCaseKeyboardFn Usage = 0x03
)

var keyCodes = newTable(KeyCode, PageKeyboardOrKeypad, []entry{
	// Aliases come first so they win as display names.
	{"left_option", keyboard.KeyLeftAlt},
	{"left_command", keyboard.KeyLeftGUI},
	{"right_option", keyboard.KeyRightAlt},
	{"right_command", keyboard.KeyRightGUI},
	{"japanese_eisuu", keyboard.KeyLang2},
	{"japanese_kana", keyboard.KeyLang1},
	{"japanese_pc_nfer", keyboard.KeyInternational5},
	{"japanese_pc_xfer", keyboard.KeyInternational4},
	{"japanese_pc_katakana", keyboard.KeyInternational2},
	{"volume_down", keyboard.KeyVolumeDown},
	{"volume_up", keyboard.KeyVolumeUp},

	{"vk_none", 0},

	{"a", keyboard.KeyA}, {"b", keyboard.KeyB}, {"c", keyboard.KeyC}, {"d", keyboard.KeyD},
	{"e", keyboard.KeyE}, {"f", keyboard.KeyF}, {"g", keyboard.KeyG}, {"h", keyboard.KeyH},
	{"i", keyboard.KeyI}, {"j", keyboard.KeyJ}, {"k", keyboard.KeyK}, {"l", keyboard.KeyL},
	{"m", keyboard.KeyM}, {"n", keyboard.KeyN}, {"o", keyboard.KeyO}, {"p", keyboard.KeyP},
	{"q", keyboard.KeyQ}, {"r", keyboard.KeyR}, {"s", keyboard.KeyS}, {"t", keyboard.KeyT},
	{"u", keyboard.KeyU}, {"v", keyboard.KeyV}, {"w", keyboard.KeyW}, {"x", keyboard.KeyX},
	{"y", keyboard.KeyY}, {"z", keyboard.KeyZ},

	{"1", keyboard.Key1}, {"2", keyboard.Key2}, {"3", keyboard.Key3}, {"4", keyboard.Key4},
	{"5", keyboard.Key5}, {"6", keyboard.Key6}, {"7", keyboard.Key7}, {"8", keyboard.Key8},
	{"9", keyboard.Key9}, {"0", keyboard.Key0},

	{"return_or_enter", keyboard.KeyEnter},
	{"escape", keyboard.KeyEscape},
	{"delete_or_backspace", keyboard.KeyBackspace},
	{"tab", keyboard.KeyTab},
	{"spacebar", keyboard.KeySpace},
	{"hyphen", keyboard.KeyMinus},
	{"equal_sign", keyboard.KeyEqual},
	{"open_bracket", keyboard.KeyLeftBrace},
	{"close_bracket", keyboard.KeyRightBrace},
	{"backslash", keyboard.KeyBackslash},
	{"non_us_pound", keyboard.KeyNonUSHash},
	{"semicolon", keyboard.KeySemicolon},
	{"quote", keyboard.KeyApostrophe},
	{"grave_accent_and_tilde", keyboard.KeyGrave},
	{"comma", keyboard.KeyComma},
	{"period", keyboard.KeyPeriod},
	{"slash", keyboard.KeySlash},
	{"caps_lock", keyboard.KeyCapsLock},

	{"f1", keyboard.KeyF1}, {"f2", keyboard.KeyF2}, {"f3", keyboard.KeyF3}, {"f4", keyboard.KeyF4},
	{"f5", keyboard.KeyF5}, {"f6", keyboard.KeyF6}, {"f7", keyboard.KeyF7}, {"f8", keyboard.KeyF8},
	{"f9", keyboard.KeyF9}, {"f10", keyboard.KeyF10}, {"f11", keyboard.KeyF11}, {"f12", keyboard.KeyF12},

	{"print_screen", keyboard.KeyPrintScreen},
	{"scroll_lock", keyboard.KeyScrollLock},
	{"pause", keyboard.KeyPause},
	{"insert", keyboard.KeyInsert},
	{"home", keyboard.KeyHome},
	{"page_up", keyboard.KeyPageUp},
	{"delete_forward", keyboard.KeyDelete},
	{"end", keyboard.KeyEnd},
	{"page_down", keyboard.KeyPageDown},
	{"right_arrow", keyboard.KeyRight},
	{"left_arrow", keyboard.KeyLeft},
	{"down_arrow", keyboard.KeyDown},
	{"up_arrow", keyboard.KeyUp},

	{"keypad_num_lock", keyboard.KeyNumLock},
	{"keypad_slash", keyboard.KeyKpSlash},
	{"keypad_asterisk", keyboard.KeyKpAsterisk},
	{"keypad_hyphen", keyboard.KeyKpMinus},
	{"keypad_plus", keyboard.KeyKpPlus},
	{"keypad_enter", keyboard.KeyKpEnter},
	{"keypad_1", keyboard.KeyKp1}, {"keypad_2", keyboard.KeyKp2}, {"keypad_3", keyboard.KeyKp3},
	{"keypad_4", keyboard.KeyKp4}, {"keypad_5", keyboard.KeyKp5}, {"keypad_6", keyboard.KeyKp6},
	{"keypad_7", keyboard.KeyKp7}, {"keypad_8", keyboard.KeyKp8}, {"keypad_9", keyboard.KeyKp9},
	{"keypad_0", keyboard.KeyKp0},
	{"keypad_period", keyboard.KeyKpDot},

	{"non_us_backslash", keyboard.KeyNonUSBackslash},
	{"application", keyboard.KeyApplication},
	{"power", keyboard.KeyPower},
	{"keypad_equal_sign", keyboard.KeyKpEqual},

	{"f13", keyboard.KeyF13}, {"f14", keyboard.KeyF14}, {"f15", keyboard.KeyF15}, {"f16", keyboard.KeyF16},
	{"f17", keyboard.KeyF17}, {"f18", keyboard.KeyF18}, {"f19", keyboard.KeyF19}, {"f20", keyboard.KeyF20},
	{"f21", keyboard.KeyF21}, {"f22", keyboard.KeyF22}, {"f23", keyboard.KeyF23}, {"f24", keyboard.KeyF24},

	{"execute", keyboard.KeyExecute},
	{"help", keyboard.KeyHelp},
	{"menu", keyboard.KeyMenu},
	{"select", keyboard.KeySelect},
	{"stop", keyboard.KeyStop},
	{"again", keyboard.KeyAgain},
	{"undo", keyboard.KeyUndo},
	{"cut", keyboard.KeyCut},
	{"copy", keyboard.KeyCopy},
	{"paste", keyboard.KeyPaste},
	{"find", keyboard.KeyFind},

	{"locking_caps_lock", keyboard.KeyLockingCapsLock},
	{"locking_num_lock", keyboard.KeyLockingNumLock},
	{"locking_scroll_lock", keyboard.KeyLockingScrollLock},
	{"keypad_comma", keyboard.KeyKpComma},
	{"keypad_equal_sign_as400", keyboard.KeyKpEqualAS400},

	{"international1", keyboard.KeyInternational1},
	{"international2", keyboard.KeyInternational2},
	{"international3", keyboard.KeyInternational3},
	{"international4", keyboard.KeyInternational4},
	{"international5", keyboard.KeyInternational5},
	{"international6", keyboard.KeyInternational6},
	{"international7", keyboard.KeyInternational7},
	{"international8", keyboard.KeyInternational8},
	{"international9", keyboard.KeyInternational9},
	{"lang1", keyboard.KeyLang1},
	{"lang2", keyboard.KeyLang2},
	{"lang3", keyboard.KeyLang3},
	{"lang4", keyboard.KeyLang4},
	{"lang5", keyboard.KeyLang5},
	{"lang6", keyboard.KeyLang6},
	{"lang7", keyboard.KeyLang7},
	{"lang8", keyboard.KeyLang8},
	{"lang9", keyboard.KeyLang9},

	{"alternate_erase", keyboard.KeyAlternateErase},
	{"sys_req_or_attention", keyboard.KeySysReq},
	{"cancel", keyboard.KeyCancel},
	{"clear", keyboard.KeyClear},
	{"prior", keyboard.KeyPrior},
	{"return", keyboard.KeyReturn},
	{"separator", keyboard.KeySeparator},
	{"out", keyboard.KeyOut},
	{"oper", keyboard.KeyOper},
	{"clear_or_again", keyboard.KeyClearOrAgain},
	{"cr_sel_or_props", keyboard.KeyCrSelOrProps},
	{"ex_sel", keyboard.KeyExSel},

	{"left_control", keyboard.KeyLeftCtrl},
	{"left_shift", keyboard.KeyLeftShift},
	{"left_alt", keyboard.KeyLeftAlt},
	{"left_gui", keyboard.KeyLeftGUI},
	{"right_control", keyboard.KeyRightCtrl},
	{"right_shift", keyboard.KeyRightShift},
	{"right_alt", keyboard.KeyRightAlt},
	{"right_gui", keyboard.KeyRightGUI},
})

// Consumer page usages.
const (
	consumerPower                      Usage = 0x30
	consumerMenu                       Usage = 0x40
	consumerMenuPick                   Usage = 0x41
	consumerMenuUp                     Usage = 0x42
	consumerMenuDown                   Usage = 0x43
	consumerMenuLeft                   Usage = 0x44
	consumerMenuRight                  Usage = 0x45
	consumerMenuEscape                 Usage = 0x46
	consumerMenuValueIncrease          Usage = 0x47
	consumerMenuValueDecrease          Usage = 0x48
	consumerDisplayBrightnessIncrement Usage = 0x6F
	consumerDisplayBrightnessDecrement Usage = 0x70
	consumerFastForward                Usage = 0xB3
	consumerRewind                     Usage = 0xB4
	consumerScanNextTrack              Usage = 0xB5
	consumerScanPreviousTrack          Usage = 0xB6
	consumerStop                       Usage = 0xB7
	consumerEject                      Usage = 0xB8
	consumerPlayOrPause                Usage = 0xCD
	consumerVoiceCommand               Usage = 0xCF
	consumerMute                       Usage = 0xE2
	consumerBassBoost                  Usage = 0xE5
	consumerLoudness                   Usage = 0xE7
	consumerVolumeIncrement            Usage = 0xE9
	consumerVolumeDecrement            Usage = 0xEA
	consumerBassIncrement              Usage = 0x152
	consumerBassDecrement              Usage = 0x153
	consumerALWordProcessor            Usage = 0x184
	consumerALTextEditor               Usage = 0x185
	consumerALEmailReader              Usage = 0x18A
	consumerALCalculator               Usage = 0x192
	consumerALInternetBrowser          Usage = 0x196
	consumerALTerminalLock             Usage = 0x19E
	consumerALControlPanel             Usage = 0x19F
	consumerALFileBrowser              Usage = 0x1B4
	consumerACSearch                   Usage = 0x221
	consumerACHome                     Usage = 0x223
	consumerACBack                     Usage = 0x224
	consumerACForward                  Usage = 0x225
	consumerACRefresh                  Usage = 0x227
	consumerACBookmarks                Usage = 0x22A
	consumerACZoomIn                   Usage = 0x22D
	consumerACZoomOut                  Usage = 0x22E
)

var consumerKeyCodes = newTable(ConsumerKeyCode, PageConsumer, []entry{
	{"dictation", consumerVoiceCommand},
	{"power", consumerPower},
	{"menu", consumerMenu},
	{"menu_pick", consumerMenuPick},
	{"menu_up", consumerMenuUp},
	{"menu_down", consumerMenuDown},
	{"menu_left", consumerMenuLeft},
	{"menu_right", consumerMenuRight},
	{"menu_escape", consumerMenuEscape},
	{"menu_value_increase", consumerMenuValueIncrease},
	{"menu_value_decrease", consumerMenuValueDecrease},
	{"display_brightness_increment", consumerDisplayBrightnessIncrement},
	{"display_brightness_decrement", consumerDisplayBrightnessDecrement},
	{"fast_forward", consumerFastForward},
	{"rewind", consumerRewind},
	{"scan_next_track", consumerScanNextTrack},
	{"scan_previous_track", consumerScanPreviousTrack},
	{"stop", consumerStop},
	{"eject", consumerEject},
	{"play_or_pause", consumerPlayOrPause},
	{"voice_command", consumerVoiceCommand},
	{"mute", consumerMute},
	{"bass_boost", consumerBassBoost},
	{"loudness", consumerLoudness},
	{"volume_increment", consumerVolumeIncrement},
	{"volume_decrement", consumerVolumeDecrement},
	{"bass_increment", consumerBassIncrement},
	{"bass_decrement", consumerBassDecrement},
	{"al_word_processor", consumerALWordProcessor},
	{"al_text_editor", consumerALTextEditor},
	{"al_email_reader", consumerALEmailReader},
	{"al_calculator", consumerALCalculator},
	{"al_internet_browser", consumerALInternetBrowser},
	{"al_terminal_lock_or_screensaver", consumerALTerminalLock},
	{"al_control_panel", consumerALControlPanel},
	{"al_file_browser", consumerALFileBrowser},
	{"ac_search", consumerACSearch},
	{"ac_home", consumerACHome},
	{"ac_back", consumerACBack},
	{"ac_forward", consumerACForward},
	{"ac_refresh", consumerACRefresh},
	{"ac_bookmarks", consumerACBookmarks},
	{"ac_zoom_in", consumerACZoomIn},
	{"ac_zoom_out", consumerACZoomOut},
	// ac_pan is a wheel, not a button.

	{"fastforward", consumerFastForward},
})

// Apple vendor keyboard page usages.
const (
	appleKeyboardSpotlight           Usage = 0x01
	appleKeyboardDashboard           Usage = 0x02
	appleKeyboardLaunchpad           Usage = 0x04
	appleKeyboardReserved            Usage = 0x0A
	appleKeyboardCapsLockDelayEnable Usage = 0x0B
	appleKeyboardPowerState          Usage = 0x0C
	appleKeyboardExposeAll           Usage = 0x10
	appleKeyboardExposeDesktop       Usage = 0x11
	appleKeyboardBrightnessUp        Usage = 0x20
	appleKeyboardBrightnessDown      Usage = 0x21
	appleKeyboardLanguage            Usage = 0x30
)

var appleVendorKeyboardKeyCodes = newTable(AppleVendorKeyboardKeyCode, PageAppleVendorKeyboard, []entry{
	{"spotlight", appleKeyboardSpotlight},
	{"dashboard", appleKeyboardDashboard},
	{"function", appleKeyboardFunction},
	{"launchpad", appleKeyboardLaunchpad},
	{"reserved", appleKeyboardReserved},
	{"caps_lock_delay_enable", appleKeyboardCapsLockDelayEnable},
	{"power_state", appleKeyboardPowerState},
	{"expose_all", appleKeyboardExposeAll},
	{"expose_desktop", appleKeyboardExposeDesktop},
	{"brightness_up", appleKeyboardBrightnessUp},
	{"brightness_down", appleKeyboardBrightnessDown},
	{"language", appleKeyboardLanguage},
})

// Apple vendor top case page usages.
const (
	appleTopCaseBrightnessUp       Usage = 0x04
	appleTopCaseBrightnessDown     Usage = 0x05
	appleTopCaseVideoMirror        Usage = 0x06
	appleTopCaseIlluminationToggle Usage = 0x07
	appleTopCaseIlluminationUp     Usage = 0x08
	appleTopCaseIlluminationDown   Usage = 0x09
	appleTopCaseClamshellLatched   Usage = 0x0A
	appleTopCaseReservedMouseData  Usage = 0xC0
)

var appleVendorTopCaseKeyCodes = newTable(AppleVendorTopCaseKeyCode, PageAppleVendorTopCase, []entry{
	{"keyboard_fn", appleTopCaseKeyboardFn},
	{"brightness_up", appleTopCaseBrightnessUp},
	{"brightness_down", appleTopCaseBrightnessDown},
	{"video_mirror", appleTopCaseVideoMirror},
	{"illumination_toggle", appleTopCaseIlluminationToggle},
	{"illumination_up", appleTopCaseIlluminationUp},
	{"illumination_down", appleTopCaseIlluminationDown},
	{"clamshell_latched", appleTopCaseClamshellLatched},
	{"reserved_mouse_data", appleTopCaseReservedMouseData},
})

var pointingButtons = newTable(PointingButton, PageButton, buttonEntries(32))

func buttonEntries(n int) []entry {
	entries := make([]entry, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, entry{name: "button" + strconv.Itoa(i), usage: Usage(i)})
	}
	return entries
}

func init() {
	for _, t := range []*table{keyCodes, consumerKeyCodes, appleVendorKeyboardKeyCodes, appleVendorTopCaseKeyCodes, pointingButtons} {
		tables[t.key] = t
	}

	// key_code also accepts names of keys that live on other pages.
	keyCodes.other = map[string]MomentarySwitchEvent{
		"mute":                         {PageConsumer, consumerMute},
		"volume_decrement":             {PageConsumer, consumerVolumeDecrement},
		"volume_increment":             {PageConsumer, consumerVolumeIncrement},
		"display_brightness_decrement": {PageConsumer, consumerDisplayBrightnessDecrement},
		"display_brightness_increment": {PageConsumer, consumerDisplayBrightnessIncrement},
		"eject":                        {PageConsumer, consumerEject},
		"fastforward":                  {PageConsumer, consumerFastForward},
		"play_or_pause":                {PageConsumer, consumerPlayOrPause},
		"rewind":                       {PageConsumer, consumerRewind},
		"vk_consumer_brightness_down":  {PageConsumer, consumerDisplayBrightnessDecrement},
		"vk_consumer_brightness_up":    {PageConsumer, consumerDisplayBrightnessIncrement},
		"vk_consumer_next":             {PageConsumer, consumerFastForward},
		"vk_consumer_play":             {PageConsumer, consumerPlayOrPause},
		"vk_consumer_previous":         {PageConsumer, consumerRewind},

		"apple_display_brightness_decrement": {PageAppleVendorKeyboard, appleKeyboardBrightnessDown},
		"apple_display_brightness_increment": {PageAppleVendorKeyboard, appleKeyboardBrightnessUp},
		"dashboard":                          {PageAppleVendorKeyboard, appleKeyboardDashboard},
		"launchpad":                          {PageAppleVendorKeyboard, appleKeyboardLaunchpad},
		"mission_control":                    {PageAppleVendorKeyboard, appleKeyboardExposeAll},
		"vk_dashboard":                       {PageAppleVendorKeyboard, appleKeyboardDashboard},
		"vk_launchpad":                       {PageAppleVendorKeyboard, appleKeyboardLaunchpad},
		"vk_mission_control":                 {PageAppleVendorKeyboard, appleKeyboardExposeAll},

		"apple_top_case_display_brightness_decrement": {PageAppleVendorTopCase, appleTopCaseBrightnessDown},
		"apple_top_case_display_brightness_increment": {PageAppleVendorTopCase, appleTopCaseBrightnessUp},
		"fn":                            {PageAppleVendorTopCase, appleTopCaseKeyboardFn},
		"illumination_decrement":        {PageAppleVendorTopCase, appleTopCaseIlluminationDown},
		"illumination_increment":        {PageAppleVendorTopCase, appleTopCaseIlluminationUp},
		"vk_consumer_illumination_down": {PageAppleVendorTopCase, appleTopCaseIlluminationDown},
		"vk_consumer_illumination_up":   {PageAppleVendorTopCase, appleTopCaseIlluminationUp},
	}
}
