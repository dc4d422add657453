package service

// Error 业务错误，Code 原样返回给客户端
type Error struct {
	Code string
}

func (e *Error) Error() string {
	return e.Code
}

func newError(code string) *Error {
	return &Error{Code: code}
}

// ==================== 认证 ====================

var (
	ErrIDLengthShort          = newError("id_length_short")
	ErrIDLengthLong           = newError("id_length_long")
	ErrPasswordLengthShort    = newError("password_length_short")
	ErrRequireSerialNumber    = newError("require_serial_number")
	ErrRequireIssueNumber     = newError("require_issue_number")
	ErrAlreadyExistLawyerInfo = newError("already_exist_serial_number_or_issue_number")
	ErrDuplicatedUser         = newError("duplicated_user")
	ErrInvalidIDOrPassword    = newError("invalid_id_or_password")
	ErrInvalidAuth            = newError("invalid_auth")
	ErrTooManyRequests        = newError("too_many_requests")
	ErrInvalidParameter       = newError("invalid_parameter")
)

// ==================== 律所 ====================

var (
	ErrHasNotPermission            = newError("has_not_permission")
	ErrAlreadyJoinLawFirm          = newError("already_join_lawFirm")
	ErrEmployeeCannotCreateLawFirm = newError("employee_cannot_create_lawfirm")
	ErrCannotWithdraw              = newError("cannot_withdraw")
	ErrNotExistUser                = newError("not_exist_user")
	ErrTargetUserNotInLawFirm      = newError("target_user_not_in_lawfirm")
	ErrEmployeeCannotBeOwner       = newError("employee_cannot_be_owner")
	ErrNotExistLawFirm             = newError("not_exist_lawfirm")
	ErrAlreadyJoinedLawFirm        = newError("already_joined_lawfirm")
	ErrAlreadyJoinRequest          = newError("already_join_request")
	ErrNotExistLawFirmJoinRequest  = newError("not_exist_lawfirm_join_request")
	ErrNotExistJoinRequest         = newError("not_exist_join_request")
	ErrCannotUseThisName           = newError("cannot_use_this_name")
	ErrNotExistGroup               = newError("not_exist_group")
	ErrCannotRemoveProtectedGroup  = newError("cannot_remove_admin_or_default_group")
	ErrNotExistLawCase             = newError("not_exist_lawcase")
	ErrUserCanBeLawyer             = newError("user_can_be_lawyer")
	ErrInvalidLawStatus            = newError("invalid_law_status")
	ErrNotExistCustomer            = newError("not_exist_customer")
	ErrHasNotAuth                  = newError("has_not_auth")
	ErrInvalidOrderKey             = newError("invalid_order_key")
	ErrNotExistConsulting          = newError("not_exist_consulting")
)

// ==================== 复代理 ====================

var (
	ErrNotExistSubAgent        = newError("not_exist_subagent")
	ErrAlreadyAcceptSubAgent   = newError("already_accept_subagent")
	ErrCannotRequestMySubAgent = newError("cannot_request_my_subagent")
	ErrAlreadyRequestSubAgent  = newError("already_request_subagent")
	ErrNotExistTargetUser      = newError("not_exist_target_user")
	ErrNotExistRequest         = newError("not_exist_request")
	ErrNotRequestSubAgent      = newError("not_requeset_subagent")
	ErrInvalidShowType         = newError("invalid_show_type")
	ErrInvalidBoardType        = newError("invalid_board_type")
	ErrNotExistBoard           = newError("not_exist_board")
	ErrCannotRemoveBoard       = newError("cannot_remove_board")
	ErrNotExistReply           = newError("not_exist_reply")
	ErrCannotUpdateReply       = newError("cannot_update_reply")
)
